// Package lazyml provides a deferred-binding namespace over heavyweight
// machine-learning backends.
//
// A Namespace exposes a fixed set of logical backend names (tensor,
// frame, plot, learn, boost, neural, vision, llm). Each name resolves
// to a real backend engine only on first genuine use; the resolved
// engine is cached for the lifetime of the namespace, and names that
// are never touched never pay their construction cost (font loading,
// server probes, pool allocation).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/lazyml"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Nothing is loaded yet.
//	    fmt.Println(lazyml.LoadedBackends()) // []
//
//	    // First use of "learn" builds the backend.
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//	    model, err := lazyml.TrainModel(X, y, "linear")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(mat.NewDense(1, 1, []float64{5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(predictions)
//
//	    fmt.Println(lazyml.LoadedBackends()) // [learn]
//	}
//
// # How loading works
//
// Backend packages register a builder keyed by their import path from
// init(), the way database/sql drivers do. Importing this root package
// links all backends; importing core/lazy plus individual backend
// packages gives slimmer builds. Resolution goes through the namespace:
// the registry maps a logical name to an import path, the resolver runs
// the registered builder, and the handle caches the result. A failed
// build is never cached, so a later access retries.
//
// # Packages
//
//   - core/lazy: registry, builder table, deferred handles
//   - core/model: estimator interfaces and model persistence
//   - core/parallel: worker-pool helpers for large inputs
//   - backends/...: the eight backend engines
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R², accuracy, log loss)
//   - pkg/errors, pkg/log, pkg/config: errors, logging, configuration
package lazyml
