package encoding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type fixedDetector struct {
	charset string
	ok      bool
}

func (d fixedDetector) Detect([]byte) (string, bool) { return d.charset, d.ok }

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestResolveFallsBackToDefault(t *testing.T) {
	path := writeTemp(t, "a.txt", []byte("hello"))

	r := NewResolver(nil, "latin-1", nil)
	if got := r.Resolve(path); got != "latin-1" {
		t.Fatalf("Resolve with no detector = %q, want latin-1", got)
	}

	r = NewResolver(fixedDetector{ok: false}, "", nil)
	if got := r.Resolve(path); got != DefaultName {
		t.Fatalf("Resolve without confident guess = %q, want %q", got, DefaultName)
	}

	if got := r.Resolve(filepath.Join(t.TempDir(), "missing")); got != DefaultName {
		t.Fatalf("Resolve on missing file = %q, want %q", got, DefaultName)
	}
}

func TestResolveUsesDetector(t *testing.T) {
	path := writeTemp(t, "a.txt", []byte("hello"))
	r := NewResolver(fixedDetector{charset: "windows-1252", ok: true}, "", nil)
	if got := r.Resolve(path); got != "windows-1252" {
		t.Fatalf("Resolve = %q, want windows-1252", got)
	}
}

func TestChardetDetectorPrefersValidUTF8(t *testing.T) {
	d := NewChardetDetector(0)
	if got, ok := d.Detect([]byte("héllo wörld")); !ok || got != "utf-8" {
		t.Fatalf("Detect = %q, %v; want utf-8, true", got, ok)
	}
	// A multi-byte rune cut in half at the end of the sample is still UTF-8.
	cut := []byte("naïve ü")
	cut = cut[:len(cut)-1]
	if got, ok := d.Detect(cut); !ok || got != "utf-8" {
		t.Fatalf("Detect on cut sample = %q, %v; want utf-8, true", got, ok)
	}
	if _, ok := d.Detect(nil); ok {
		t.Fatalf("empty sample must not produce a guess")
	}
}

func TestReadFileDecodesLatin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("café crème"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeTemp(t, "latin.txt", raw)

	r := NewResolver(nil, "iso-8859-1", nil)
	content, name, err := r.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "iso-8859-1" {
		t.Fatalf("encoding = %q", name)
	}
	if content != "café crème" {
		t.Fatalf("content = %q", content)
	}
}

func TestReadFileReplacesInvalidBytes(t *testing.T) {
	path := writeTemp(t, "bad.txt", []byte{'o', 'k', 0xff, 0xfe, '!'})
	r := NewResolver(nil, "utf-8", nil)
	content, _, err := r.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(content, "ok") || !strings.HasSuffix(content, "!") || !strings.ContainsRune(content, '�') {
		t.Fatalf("content = %q", content)
	}
}

func TestReadFileUnknownEncodingUsesDefault(t *testing.T) {
	path := writeTemp(t, "a.txt", []byte("plain"))
	r := NewResolver(fixedDetector{charset: "x-made-up", ok: true}, "utf-8", nil)
	content, name, err := r.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "utf-8" || content != "plain" {
		t.Fatalf("got %q / %q", name, content)
	}
}

func TestReadFileMissing(t *testing.T) {
	r := NewResolver(nil, "", nil)
	if _, _, err := r.ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLookupAcceptsCommonSpellings(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF8", "latin-1", "iso-8859-1", "cp1252", "Shift_JIS", "utf-16le"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
		}
	}
	if _, err := Lookup("x-made-up"); err == nil {
		t.Errorf("Lookup of an unknown name should fail")
	}
}
