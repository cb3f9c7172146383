package cmd

import (
	"errors"
	"fmt"
	log2 "log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/endpoint"
	"github.com/datastax/data-filter-apis/log"
)

const defaultGraphQLPath = "/graphql"
const defaultRESTPath = "/rest"

// Environment variables prefixed with "DATA_API_" can override settings e.g. "DATA_API_DSN"
const envVarPrefix = "data_api"

var cfgFile string
var envFile string
var logger log.Logger
var cfg *endpoint.DataEndpointConfig

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --dsn [DSN] --config [FILE] [--start-graphql|--start-rest] [OPTIONS]",
	Short: "Filterable GraphQL and REST endpoints for SQL tables",
	Args: func(cmd *cobra.Command, args []string) error {
		return validateSettings()
	},
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()

		graphqlPort := viper.GetInt("graphql-port")
		restPort := viper.GetInt("rest-port")

		started := startedEndpoints()

		if graphqlPort == restPort {
			router := createRouter()
			if started.IsSupported(config.GraphQLEndpoint) {
				addGraphQLRoutes(router, endpoint)
			}
			if started.IsSupported(config.RESTEndpoint) {
				addRESTRoutes(router, endpoint)
			}
			listenAndServe(router, graphqlPort, started.String())
		} else {
			finish := make(chan bool)
			if started.IsSupported(config.GraphQLEndpoint) {
				router := createRouter()
				addGraphQLRoutes(router, endpoint)
				go listenAndServe(router, graphqlPort, config.GraphQLEndpoint.String())
			}
			if started.IsSupported(config.RESTEndpoint) {
				router := createRouter()
				addRESTRoutes(router, endpoint)
				go listenAndServe(router, restPort, config.RESTEndpoint.String())
			}
			<-finish
		}
	},
}

// Execute starts the GraphQL/REST endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	// General endpoint flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file declaring the filterable entities")
	flags.StringVar(&envFile, "env-file", ".env", "file of environment variables to load before reading settings")
	flags.String("driver", endpoint.DefaultDriver, "database driver. options: postgres,pgx")
	flags.String("dsn", "", "data source name used to connect to the database")
	flags.Int("db-max-open-conns", 0, "maximum number of open database connections, 0 means unlimited")
	flags.Int("db-max-idle-conns", 2, "maximum number of idle database connections")
	flags.Duration("db-conn-max-lifetime", 0, "maximum amount of time a database connection may be reused")
	flags.Int("max-filter-values", 0, "maximum number of filter values per request, 0 means unlimited")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	// GraphQL specific flags
	flags.Bool("start-graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Int("graphql-port", 8080, "GraphQL endpoint port")

	// REST specific flags
	flags.Bool("start-rest", true, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")
	flags.Int("rest-port", 8080, "REST endpoint port")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" && flag.Name != "env-file" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func validateSettings() error {
	if viper.GetString("dsn") == "" {
		return errors.New("dsn is required")
	}

	started := startedEndpoints()
	if started == 0 {
		return errors.New("at least one endpoint type should be started")
	}

	if started == config.GraphQLEndpoint|config.RESTEndpoint &&
		viper.GetInt("graphql-port") == viper.GetInt("rest-port") &&
		viper.GetString("graphql-path") == viper.GetString("rest-path") {
		return errors.New("graphql and rest paths can not be the same when using the same port")
	}

	return nil
}

func startedEndpoints() config.EndpointTypes {
	var names []string
	if viper.GetBool("start-graphql") {
		names = append(names, "graphql")
	}
	if viper.GetBool("start-rest") {
		names = append(names, "rest")
	}
	started, _ := config.Endpoints(names...)
	return started
}

func createEndpoint() *endpoint.DataEndpoint {
	cfg = endpoint.NewEndpointConfigWithLogger(logger, viper.GetString("dsn"))

	naming := config.NewDefaultNaming()
	entities, err := config.LoadEntities(viper.GetViper(), naming)
	if err != nil {
		logger.Fatal("invalid entities configuration",
			"file", viper.ConfigFileUsed(),
			"error", err)
	}

	cfg.
		WithDriver(viper.GetString("driver")).
		WithNaming(naming).
		WithEntities(entities).
		WithMaxFilterValues(viper.GetInt("max-filter-values")).
		WithDbOptions(&db.Options{
			MaxOpenConns:    viper.GetInt("db-max-open-conns"),
			MaxIdleConns:    viper.GetInt("db-max-idle-conns"),
			ConnMaxLifetime: viper.GetDuration("db-conn-max-lifetime"),
		})

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	routes, err := endpoint.RoutesGraphQL(viper.GetString("graphql-path"))
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	for _, route := range endpoint.RoutesREST(viper.GetString("rest-path")) {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil {
			logger.Info("loaded environment file",
				"file", envFile)
		} else if !os.IsNotExist(err) {
			logger.Warn("unable to load environment file",
				"file", envFile,
				"error", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		} else {
			logger.Fatal("unable to read config file",
				"file", cfgFile,
				"error", err)
		}
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Method", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

func listenAndServe(handler http.Handler, port int, endpointNames string) {
	logger.Info("server listening",
		"port", port,
		"type", endpointNames)
	handler = maybeAddCORS(maybeAddRequestLogging(handler))
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler)
	if err != nil {
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	}
}
