// Package encoding guesses the text encoding of files and decodes them,
// replacing undecodable bytes instead of failing.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/agusx1211/glean/internal/logging"
)

const (
	// DefaultName is used when nothing better is known.
	DefaultName = "utf-8"
	// SampleSize is how much of a file the detector looks at.
	SampleSize = 8 * 1024
)

// Detector guesses the charset of a byte sample. ok is false when it has no
// confident answer.
type Detector interface {
	Detect(sample []byte) (charset string, ok bool)
}

// NopDetector never guesses, so the configured default is always used.
type NopDetector struct{}

func (NopDetector) Detect([]byte) (string, bool) { return "", false }

// ChardetDetector uses statistical charset detection.
type ChardetDetector struct {
	// MinConfidence is the lowest accepted confidence (0-100).
	MinConfidence int
	det           *chardet.Detector
}

// NewChardetDetector returns a detector for plain text input.
func NewChardetDetector(minConfidence int) *ChardetDetector {
	return &ChardetDetector{MinConfidence: minConfidence, det: chardet.NewTextDetector()}
}

func (d *ChardetDetector) Detect(sample []byte) (string, bool) {
	if len(sample) == 0 {
		return "", false
	}
	if utf8.Valid(trimPartialRune(sample)) {
		return "utf-8", true
	}
	res, err := d.det.DetectBest(sample)
	if err != nil || res == nil || res.Charset == "" {
		return "", false
	}
	if res.Confidence < d.MinConfidence {
		return "", false
	}
	return res.Charset, true
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end of a
// sample cut at a fixed byte budget.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			return b
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}

// Resolver picks an encoding per file and reads files through it.
type Resolver struct {
	detector    Detector
	defaultName string
	logger      *zap.Logger
}

// NewResolver builds a Resolver. A nil detector behaves like NopDetector and
// an empty default means utf-8.
func NewResolver(detector Detector, defaultName string, logger *zap.Logger) *Resolver {
	if detector == nil {
		detector = NopDetector{}
	}
	if strings.TrimSpace(defaultName) == "" {
		defaultName = DefaultName
	}
	return &Resolver{detector: detector, defaultName: defaultName, logger: logging.OrNop(logger)}
}

// Default returns the configured fallback encoding name.
func (r *Resolver) Default() string {
	return r.defaultName
}

// Resolve returns the encoding name for path. It never fails: any problem
// reading the sample or detecting a charset yields the default.
func (r *Resolver) Resolve(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return r.defaultName
	}
	defer f.Close()

	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return r.defaultName
	}

	charset, ok := r.detector.Detect(buf[:n])
	if !ok {
		return r.defaultName
	}
	r.logger.Debug("Detected encoding", zap.String("path", path), zap.String("encoding", charset))
	return charset
}

// ReadFile reads and decodes path, returning the content and the encoding
// actually used. Only I/O errors are returned.
func (r *Resolver) ReadFile(path string) (string, string, error) {
	name := r.Resolve(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", name, err
	}

	enc, err := Lookup(name)
	if err != nil {
		r.logger.Debug("Unknown encoding, using default",
			zap.String("path", path), zap.String("encoding", name), zap.Error(err))
		name = r.defaultName
		if enc, err = Lookup(name); err != nil {
			name = DefaultName
			enc = unicode.UTF8
		}
	}
	return Decode(data, enc), name, nil
}

var labelSquasher = strings.NewReplacer("-", "", "_", "")

// Lookup finds an encoding by WHATWG label or IANA name.
func Lookup(name string) (xencoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	// "latin-1" and "utf_8" style spellings are common on the command line.
	for _, candidate := range []string{label, labelSquasher.Replace(label)} {
		if enc, err := htmlindex.Get(candidate); err == nil && enc != nil {
			return enc, nil
		}
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// Decode converts data to UTF-8. Bytes that cannot be decoded become U+FFFD.
func Decode(data []byte, enc xencoding.Encoding) string {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return strings.ToValidUTF8(string(out), string(utf8.RuneError))
}
