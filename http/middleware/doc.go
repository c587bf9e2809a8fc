/*
The middleware package defines what a middleware is in lumber's HTTP surfaces and a set of basic middlewares.

The available middlewares are:
- AccessLog
- CORS
- InjectClientIP
- LogRequest
- RateLimit
- Recover
- RequestID

The admin server applies this chain to every request:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.Recover(log),
		middleware.RateLimit(vs),
		middleware.InjectClientIP(),
		middleware.RequestID(),
		middleware.LogRequest(log),
	}
*/
package middleware
