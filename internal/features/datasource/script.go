package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
)

const scriptTimeout = 5 * time.Second

// RunValueScript executes a KPI's code in a sandbox. The script must assign
// the variable `value`; that is what the widget displays. Scripts get no
// imports and a hard timeout, so a paste from an untrusted dashboard cannot
// reach the host or spin forever.
func RunValueScript(ctx context.Context, code string) (any, error) {
	if code == "" {
		code = "value := 0"
	}

	script := tengo.NewScript([]byte(code))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile script: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to run script: %w", err)
	}

	v := compiled.Get("value")
	if v.Value() == nil {
		return nil, fmt.Errorf("script did not assign 'value'")
	}
	return v.Value(), nil
}
