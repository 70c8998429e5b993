// Package kagome provides a Tokenizer backed by the kagome morphological
// analyser and its bundled IPA and UniDic dictionaries.
package kagome

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Feature indices shared by the IPA and UniDic feature layouts used here.
const (
	posDepth     = 4
	unknownValue = "*"
)

// uniSymbol is the UniDic tag for punctuation. It is reported as the IPA
// tag so the boundary rules apply to both dictionaries.
const (
	uniSymbol = "補助記号"
	ipaSymbol = "記号"
)

// Tokenizer lazily loads a kagome dictionary and tokenizes paragraphs.
// The dictionary is loaded at most once, on the first WaitReady or Query.
// It is safe for concurrent use.
type Tokenizer struct {
	dictionary domain.Dictionary
	logger     *zap.Logger

	once  sync.Once
	ready chan struct{}
	tok   *tokenizer.Tokenizer
	err   error
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tokenizer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a tokenizer for the named dictionary.
// An empty name selects the IPA dictionary.
func New(dictionary domain.Dictionary, opts ...Option) *Tokenizer {
	if dictionary == "" {
		dictionary = domain.DictionaryIPA
	}
	t := &Tokenizer{
		dictionary: dictionary,
		logger:     zap.NewNop(),
		ready:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns "kagome/" followed by the dictionary name.
func (t *Tokenizer) Name() string {
	return "kagome/" + t.dictionary.String()
}

// WaitReady loads the dictionary on first use and blocks until it is ready
// or ctx is done. A load failure is returned on every call.
func (t *Tokenizer) WaitReady(ctx context.Context) error {
	t.once.Do(func() {
		go t.load()
	})

	select {
	case <-t.ready:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query tokenizes one paragraph.
func (t *Tokenizer) Query(ctx context.Context, paragraph string) ([]domain.Token, error) {
	if err := t.WaitReady(ctx); err != nil {
		return nil, err
	}
	if paragraph == "" {
		return nil, nil
	}
	return convertTokens(t.tok.Tokenize(paragraph)), nil
}

func (t *Tokenizer) load() {
	defer close(t.ready)

	start := time.Now()
	d, err := loadDictionary(t.dictionary)
	if err != nil {
		t.err = err
		t.logger.Warn("dictionary unavailable", zap.String("dictionary", t.dictionary.String()), zap.Error(err))
		return
	}

	tok, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		t.err = fmt.Errorf("%w: %v", domain.ErrTokenizerUnavailable, err)
		return
	}
	t.tok = tok
	t.logger.Debug("tokenizer ready",
		zap.String("dictionary", t.dictionary.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// loadDictionary returns the bundled dictionary for name.
// The dictionary packages panic on corrupt embedded data.
func loadDictionary(name domain.Dictionary) (d *dict.Dict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: loading %s dictionary: %v", domain.ErrTokenizerUnavailable, name, r)
		}
	}()

	switch name {
	case domain.DictionaryIPA:
		return ipa.Dict(), nil
	case domain.DictionaryUni:
		return uni.Dict(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDictionary, name)
	}
}

func convertTokens(ktoks []tokenizer.Token) []domain.Token {
	out := make([]domain.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		pos := make([]string, posDepth)
		for i, p := range kt.POS() {
			if i >= posDepth {
				break
			}
			pos[i] = clean(p)
		}
		if pos[0] == uniSymbol {
			pos[0] = ipaSymbol
		}

		token := domain.Token{
			Surface:    kt.Surface,
			POS:        pos[0],
			POSDetail1: pos[1],
			POSDetail2: pos[2],
			POSDetail3: pos[3],
		}
		if v, ok := kt.InflectionalType(); ok {
			token.Conjugation1 = clean(v)
		}
		if v, ok := kt.InflectionalForm(); ok {
			token.Conjugation2 = clean(v)
		}
		if v, ok := kt.BaseForm(); ok {
			token.BaseForm = clean(v)
		}
		if v, ok := kt.Reading(); ok {
			token.Reading = clean(v)
		}
		if v, ok := kt.Pronunciation(); ok {
			token.Pronunciation = clean(v)
		}
		out = append(out, token)
	}
	return out
}

// clean maps the dictionary placeholder for missing values to "".
func clean(v string) string {
	v = strings.TrimSpace(v)
	if v == unknownValue {
		return ""
	}
	return v
}
