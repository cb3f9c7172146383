package endpoint

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/graphql"
	. "github.com/datastax/data-filter-apis/internal/testutil"
	"github.com/datastax/data-filter-apis/internal/testutil/rest"
	v1 "github.com/datastax/data-filter-apis/rest/endpoint/v1"
	"github.com/datastax/data-filter-apis/rest/models"
	"github.com/datastax/data-filter-apis/types"
)

type responseBody struct {
	Data   map[string]interface{}   `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

func createEndpoint(maxFilterValues int) (*db.SessionMock, *DataEndpoint) {
	cfg := NewEndpointConfigWithLogger(TestLogger(), "postgres://localhost/test").
		WithEntities(Entities()).
		WithMaxFilterValues(maxFilterValues)
	session := db.NewSessionMock()
	return session, cfg.newEndpointWithDb(db.NewDbWithSession(session))
}

func executePost(routes []types.Route, target string, body graphql.RequestBody) responseBody {
	b, err := json.Marshal(body)
	Expect(err).ToNot(HaveOccurred())

	var route types.Route
	for _, r := range routes {
		if r.Method == http.MethodPost {
			route = r
		}
	}
	Expect(route.Handler).ToNot(BeNil())

	w := httptest.NewRecorder()
	route.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b)))
	Expect(w.Code).To(Equal(http.StatusOK))

	var resp responseBody
	Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
	return resp
}

var _ = Describe("DataEndpoint", func() {
	var (
		session  *db.SessionMock
		endpoint *DataEndpoint
	)

	BeforeEach(func() {
		session, endpoint = createEndpoint(4)
	})

	Describe("NewEndpoint()", func() {
		It("Should reject an unsupported driver", func() {
			_, err := NewEndpointConfigWithLogger(TestLogger(), "dsn").WithDriver("cql").NewEndpoint()
			Expect(err).To(MatchError("unsupported driver: cql"))
		})

		It("Should require a dsn", func() {
			_, err := NewEndpointConfigWithLogger(TestLogger(), "").NewEndpoint()
			Expect(err).To(MatchError("dsn must be provided"))
		})
	})

	Describe("RoutesREST()", func() {
		var routes []types.Route

		BeforeEach(func() {
			routes = endpoint.RoutesREST(rest.Prefix)
		})

		It("Should list the configured entities", func() {
			Expect(routes).To(HaveLen(2))

			var response models.Entities
			code := rest.ExecuteGet(routes, v1.EntitiesPath, "", &response)
			Expect(code).To(Equal(http.StatusOK))
			Expect(response.Entities).To(HaveLen(2))
			Expect(response.Entities[0].Name).To(Equal("users"))
			Expect(response.Entities[1].Name).To(Equal("teams"))
		})

		It("Should select rows with includes, excludes and null", func() {
			rows := []map[string]interface{}{{"id": "1", "name": "ann"}}
			session.
				On("Query",
					`SELECT * FROM "app_users" WHERE "gender" NOT IN (?) AND ("team_id" IN (?, ?) OR "team_id" IS NULL)`,
					[]interface{}{"m", "1", "2"}).
				Return(rows, nil)

			var response models.Rows
			code := rest.ExecuteGet(routes, v1.RowsPathFormat, "filter[TeamId]=1,2,null&filter[gender]=!m", &response, "users")
			Expect(code).To(Equal(http.StatusOK))
			Expect(response.Count).To(Equal(1))
			Expect(response.Rows).To(Equal(rows))
			session.AssertExpectations(GinkgoT())
		})

		It("Should reject unknown filter keys", func() {
			var response models.ModelError
			code := rest.ExecuteGet(routes, v1.RowsPathFormat, "filter[email]=x&filter[name]=ann", &response, "teams")
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(response.Description).To(Equal("cannot filter by: email"))
			session.AssertNotCalled(GinkgoT(), "Query", mock.Anything, mock.Anything)
		})

		It("Should reject too many filter values", func() {
			var response models.ModelError
			code := rest.ExecuteGet(routes, v1.RowsPathFormat, "filter[id]=1,2,3,4,5", &response, "users")
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(response.Description).To(ContainSubstring("at most 4"))
		})
	})

	Describe("RoutesGraphQL()", func() {
		var routes []types.Route

		BeforeEach(func() {
			var err error
			routes, err = endpoint.RoutesGraphQL("/graphql")
			Expect(err).ToNot(HaveOccurred())
			Expect(routes).To(HaveLen(2))
		})

		It("Should select rows using the filter argument", func() {
			session.
				On("Query", `SELECT * FROM "app_teams" WHERE "name" IN (?, ?)`, []interface{}{"a", "a"}).
				Return([]map[string]interface{}{{"id": "7", "name": "a"}}, nil)

			resp := executePost(routes, "/graphql", graphql.RequestBody{
				Query: `{ teams(filter: [{key: "name", value: "a,a"}]) }`,
			})
			Expect(resp.Errors).To(BeEmpty())
			Expect(resp.Data).To(HaveKeyWithValue("teams", ConsistOf(
				map[string]interface{}{"id": "7", "name": "a"},
			)))
		})

		It("Should surface unknown filter keys as errors", func() {
			resp := executePost(routes, "/graphql", graphql.RequestBody{
				Query: `{ users(filter: [{key: "Email", value: "x"}, {key: "gender", value: "f"}]) }`,
			})
			Expect(resp.Errors).To(HaveLen(1))
			Expect(resp.Errors[0]["message"]).To(Equal("cannot filter by: Email"))
		})

		It("Should surface database errors", func() {
			session.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

			resp := executePost(routes, "/graphql", graphql.RequestBody{Query: `{ users }`})
			Expect(resp.Errors).To(HaveLen(1))
		})
	})
})
