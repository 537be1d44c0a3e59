// Package log defines standard attribute keys for lazyml operations.
//
// This file contains predefined attribute keys used across the library.
// Using these keys keeps log output consistent between the deferred
// loader, the backends, and the convenience wrappers, which enables
// structured filtering (e.g. every resolution attempt carries
// "backend.name" and "backend.import_path").
//
// The keys follow a hierarchical naming convention ("backend.name",
// "data.samples") to support structured log analysis.

package log

// Backend resolution context
// These attributes describe deferred-loading activity: which backend is
// being resolved, from which import path, and with what outcome.
const (
	// BackendKey identifies the logical backend name being resolved.
	// Examples: "tensor", "boost", "llm"
	BackendKey = "backend.name"

	// ImportPathKey is the import path the backend resolves through.
	ImportPathKey = "backend.import_path"

	// OutcomeKey records the result of a resolution attempt.
	// Standard values: OutcomeLoaded, OutcomeFailed, OutcomeCached
	OutcomeKey = "loader.outcome"

	// NamespaceIDKey is the unique id of the namespace instance that
	// performed the resolution. Namespace ids are UUID strings.
	NamespaceIDKey = "namespace.id"

	// ProviderKey identifies a sub-provider within a backend, e.g. the
	// "ollama" or "openai" provider of the llm backend.
	ProviderKey = "backend.provider"

	// VersionKey records the version string a resolved backend reports.
	VersionKey = "backend.version"
)

// Model and operation context
// These attributes identify the model type, instance, and the operation
// being performed by a backend.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LinearRegression", "StandardScaler", "Sequential"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "learn", "boost", "neural", "metrics"
	ComponentKey = "ml.component"
)

// Data shape
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Performance and training metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records a loss value during training or evaluation.
	LossKey = "metrics.loss"

	// IterationKey records the iteration number of an iterative process.
	IterationKey = "training.iteration"

	// EpochKey records the epoch number during training.
	EpochKey = "training.epoch"
)

// Error context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "LoadError", "AttributeError", "ValueError"
	ErrorTypeKey = "error.type"
)

// Standard attribute value constants.
const (
	// Resolution outcomes
	OutcomeLoaded = "loaded"
	OutcomeFailed = "failed"
	OutcomeCached = "cached"

	// Standard ML operations
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationLoad         = "load"
)
