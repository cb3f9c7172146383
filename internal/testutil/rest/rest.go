package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"

	"github.com/datastax/data-filter-apis/rest/models"
	"github.com/datastax/data-filter-apis/types"
)

const Prefix = "/rest"

// ExecuteGet performs a GET request against the route matching routeFormat and decodes the response
// into responsePtr. The query string is appended as-is.
func ExecuteGet(routes []types.Route, routeFormat string, query string, responsePtr interface{}, values ...interface{}) int {
	rv := reflect.ValueOf(responsePtr)
	if responsePtr != nil && rv.Kind() != reflect.Ptr {
		panic("Provided value should be a pointer or nil")
	}

	targetPath := path.Join(Prefix, fmt.Sprintf(routeFormat, values...))
	if query != "" {
		targetPath += "?" + query
	}

	r, _ := http.NewRequest(http.MethodGet, targetPath, nil)
	w := httptest.NewRecorder()
	route := lookupRoute(routes, http.MethodGet, routeFormat)

	// Use default router for params to be populated
	router := httprouter.New()
	router.Handler(http.MethodGet, route.Pattern, route.Handler)
	router.ServeHTTP(w, r)

	if w.Code < http.StatusOK || w.Code > http.StatusIMUsed {
		if responsePtr == nil {
			return w.Code
		}
		_, ok := responsePtr.(*models.ModelError)
		if !ok {
			panic(fmt.Sprintf("unexpected http error %d: %s", w.Code, w.Body))
		}
	}

	if responsePtr != nil {
		bodyString := w.Body.String()
		err := json.NewDecoder(bytes.NewBufferString(bodyString)).Decode(responsePtr)
		Expect(err).ToNot(HaveOccurred(),
			fmt.Sprintf("Error decoding response with code %d and body: %s", w.Code, bodyString))
	}

	return w.Code
}

func lookupRoute(routes []types.Route, method, format string) types.Route {
	// Word tokens for parameters
	regexStr := strings.Replace(format, `%s`, `[\w:{}]+`, -1)
	regexStr += `$`

	re := regexp.MustCompile(regexStr)
	for _, route := range routes {
		if re.MatchString(route.Pattern) && route.Method == method {
			return route
		}
	}

	panic("Route not found")
}
