package rest

const (
	// ops
	RouteStatus  = "/status"
	RouteStats   = "/stats"
	RouteMetrics = "/metrics"

	// auth
	RouteConnect    = "/connect"
	RouteDisconnect = "/disconnect"

	RouteUsers   = "/users"
	RouteUsersMe = RouteUsers + "/me"

	RouteFiles         = "/files"
	RouteFile          = RouteFiles + "/:id"
	RouteFilePublish   = RouteFile + "/publish"
	RouteFileUnpublish = RouteFile + "/unpublish"
	RouteFileData      = RouteFile + "/data"
)
