package procs

// Proc is a step that returns its continuation. A nil continuation means the step is done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Func adapts a function to a Proc.
type Func[C any] func(ctx C) (Proc[C], error)

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Drain runs proc and its continuations until one returns nil.
func Drain[C any](ctx C, proc Proc[C]) (err error) {
	for proc != nil {
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
