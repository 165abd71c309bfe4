package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gotslint/pkg/fsutil"
)

func FuzzWriteAtomicRoundTrip(f *testing.F) {
	for _, seed := range []string{"", "let a = 1;\n", "const s = `\r\n`;", "\x00\xff", "// é\n"} {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "fuzz.ts")
		if err := os.WriteFile(path, []byte("seed"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, snap, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		if err := fsutil.WriteAtomic(ctx, path, content, snap.Mode); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		got, after, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("read back %q, wrote %q", got, content)
		}
		if changed, err := after.Changed(ctx, true); err != nil || changed {
			t.Fatalf("fresh snapshot reported changed=%v err=%v", changed, err)
		}
		if !bytes.Equal(content, []byte("seed")) {
			if changed, _ := snap.Changed(ctx, true); !changed {
				t.Fatal("stale snapshot not reported as changed")
			}
		}
	})
}
