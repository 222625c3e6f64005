// Package files locates listings datasets on disk.
//
// A configured dataset path may name a file or a directory. For a directory,
// Discovery picks the most recently modified listings file in it, so a new
// export can be dropped next to the old ones without touching configuration.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	path, err := discovery.ResolveDataset("data")
//	if err != nil {
//	    return err
//	}
package files
