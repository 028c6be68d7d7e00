// Package testutil holds helpers shared by the tests of this module.
package testutil

import (
	"os"
	"strings"
	"testing"
)

// EnvPrefix is the prefix of the environment variables hook configuration reads.
const EnvPrefix = "EVENTHOOK_"

// snapshotEnv records every EVENTHOOK_* variable plus the given extra names.
func snapshotEnv(extra ...string) map[string]*string {
	snapshot := map[string]*string{}
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			v := value
			snapshot[name] = &v
		}
	}
	for _, name := range extra {
		if _, tracked := snapshot[name]; tracked {
			continue
		}
		if v, ok := os.LookupEnv(name); ok {
			vCopy := v
			snapshot[name] = &vCopy
		} else {
			snapshot[name] = nil
		}
	}
	return snapshot
}

// restoreEnv puts the environment back to snapshot. EVENTHOOK_* variables
// added after the snapshot are removed.
func restoreEnv(snapshot map[string]*string) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if _, tracked := snapshot[name]; !tracked && strings.HasPrefix(name, EnvPrefix) {
			_ = os.Unsetenv(name)
		}
	}
	for k, v := range snapshot {
		if v == nil {
			_ = os.Unsetenv(k)
		} else {
			_ = os.Setenv(k, *v)
		}
	}
}

// WithIsolatedEnv runs fn and restores the EVENTHOOK_* variables and the
// extra names afterwards.
func WithIsolatedEnv(fn func(), extra ...string) {
	snapshot := snapshotEnv(extra...)
	defer restoreEnv(snapshot)
	fn()
}

// Isolate snapshots the EVENTHOOK_* variables and the extra names and
// registers a t.Cleanup restoring them. Safe to call multiple times in a test
// (restores run LIFO).
func Isolate(t testing.TB, extra ...string) {
	t.Helper()
	snapshot := snapshotEnv(extra...)
	t.Cleanup(func() {
		restoreEnv(snapshot)
	})
}
