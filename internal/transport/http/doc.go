// Package http implements the HTTP handlers of the dashboard API. Handlers
// stay thin: they parse and validate the request, call the dashboard
// service, and render the result as JSON with go-chi/render.
//
// # Routes
//
//	GET    /api/health, /api/health/ready, /api/health/live, /api/version
//	GET    /api/dashboard                       current snapshot
//	GET    /api/dashboard/filter                active and pending filter
//	PATCH  /api/dashboard/filter                merge a filter change (202 while debounced)
//	POST   /api/dashboard/filter/flush          apply the pending change now
//	DELETE /api/dashboard/filter                restore the default filter
//	GET    /api/dashboard/options               filter choices (?brand_search=)
//	GET    /api/dashboard/kpis
//	GET    /api/dashboard/charts/{chart}        brand-performance, price-distribution, market-share, features
//	GET    /api/dashboard/cars                  sorted page (?sort=&order=&page=&per_page=)
//	GET    /api/dashboard/cars/{carID}
//	GET    /api/dashboard/compare               (?limit=)
//	GET    /api/dashboard/export                exportable datasets
//	GET    /api/dashboard/export/{dataset}      CSV attachment
//
// # Error Handling
//
// Errors are RFC 7807 problem documents produced by errors.ErrorHandler.
// Data endpoints answer 503 while the dataset is loading and after a failed
// load, 404 for unknown cars or export datasets, and 400 for invalid query
// parameters or filter patches.
package http
