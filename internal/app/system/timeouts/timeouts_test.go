package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
)

func TestConfigure_OverridesNonZeroOnly(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Short: 3 * time.Second, Publish: 5 * time.Minute})

	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("Short = %v", got)
	}
	if got := timeouts.Publish(); got != 5*time.Minute {
		t.Errorf("Publish = %v", got)
	}
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium = %v, want default", got)
	}
}

func TestReset(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: time.Millisecond})
	timeouts.Reset()
	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping after Reset = %v", got)
	}
}

func TestWithShort_SetsDeadline(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	timeouts.Configure(timeouts.Config{Short: time.Minute})

	ctx, cancel := timeouts.WithShort(context.Background())
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatal("no deadline")
	}
	if left := time.Until(dl); left <= 0 || left > time.Minute {
		t.Errorf("deadline in %v", left)
	}
}
