package soft3d

// RendererOption configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Built-in programs only
//	r := soft3d.NewRenderer(fb)
//
//	// Plug in a user program under a custom algorithm id
//	r := soft3d.NewRenderer(fb, soft3d.WithProgram(soft3d.AlgorithmCustom, myProgram))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	programs map[Algorithm]Program
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		programs: make(map[Algorithm]Program),
	}
}

// WithProgram registers p for algorithm a, replacing the built-in program
// if a names one. This is how user vertex and fragment shaders are
// plugged into the pipeline.
func WithProgram(a Algorithm, p Program) RendererOption {
	return func(o *rendererOptions) {
		if p != nil {
			o.programs[a] = p
		}
	}
}
