// Package app wires the car listings dashboard together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, an optional YAML file and CARS_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Create the dashboard service, pipeline metrics and the WebSocket hub
//	4. Set up HTTP handlers and middleware
//	5. Serve, loading the dataset in the background
//
// # Usage
//
//	application, err := app.New()
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns once ctx is cancelled or the server fails. Shutdown stops
// accepting requests, waits for in-flight ones up to the configured timeout,
// closes WebSocket clients and flushes telemetry.
//
// # Error Handling
//
// Initialization errors are returned to the caller. A dataset that fails to
// load does not stop the process; data endpoints report the failure instead.
package app
