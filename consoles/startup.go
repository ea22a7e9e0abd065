package consoles

import (
	"context"
	"os"

	"github.com/reusee/starconsole/evals"
	"github.com/reusee/starconsole/procs"
	"github.com/reusee/starconsole/transcripts"
)

// Startup shows banner and executes files into the namespace, above the first prompt.
// A failing file is reported and the rest still run.
func (c *Console) Startup(ctx context.Context, banner string, files []string) {
	var steps procs.Procs[context.Context]
	if banner != "" {
		steps = append(steps, procs.Func[context.Context](func(context.Context) (procs.Proc[context.Context], error) {
			c.insertOutput(banner, transcripts.Output)
			return nil, nil
		}))
	}
	for _, path := range files {
		steps = append(steps, c.execFileProc(path))
	}
	// steps report their own failures
	_ = procs.Drain(ctx, procs.Proc[context.Context](steps))
}

func (c *Console) execFileProc(path string) procs.Proc[context.Context] {
	return procs.Func[context.Context](func(ctx context.Context) (procs.Proc[context.Context], error) {
		src, err := os.ReadFile(path)
		if err == nil {
			err = c.evaluator.ExecFile(ctx, path, src)
		}
		if err != nil {
			c.logger.WarnContext(ctx, "startup file", "path", path, "error", err)
			c.insertOutput(evals.FormatError(err), transcripts.Error)
		}
		return nil, nil
	})
}
