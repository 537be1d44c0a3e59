// Package all registers every backend builder. Import it for effect
// when the whole namespace should be resolvable:
//
//	import _ "github.com/YuminosukeSato/lazyml/backends/all"
//
// Importing a backend only registers its builder; nothing is loaded
// until the namespace is asked for it.
package all

import (
	_ "github.com/YuminosukeSato/lazyml/backends/boost"
	_ "github.com/YuminosukeSato/lazyml/backends/frame"
	_ "github.com/YuminosukeSato/lazyml/backends/learn"
	_ "github.com/YuminosukeSato/lazyml/backends/llm"
	_ "github.com/YuminosukeSato/lazyml/backends/neural"
	_ "github.com/YuminosukeSato/lazyml/backends/plotting"
	_ "github.com/YuminosukeSato/lazyml/backends/tensor"
	_ "github.com/YuminosukeSato/lazyml/backends/vision"
)
