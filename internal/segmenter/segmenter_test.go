package segmenter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// fakeTokenizer returns canned tokens per paragraph. Paragraphs without an
// entry are tokenized one token per rune.
type fakeTokenizer struct {
	tokens     map[string][]domain.Token
	readyErr   error
	queryErr   error
	readyCalls int
	queries    []string
}

func (f *fakeTokenizer) Name() string { return "fake" }

func (f *fakeTokenizer) WaitReady(_ context.Context) error {
	f.readyCalls++
	return f.readyErr
}

func (f *fakeTokenizer) Query(_ context.Context, paragraph string) ([]domain.Token, error) {
	f.queries = append(f.queries, paragraph)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if tokens, ok := f.tokens[paragraph]; ok {
		return tokens, nil
	}
	return runeTokens(paragraph), nil
}

func runeTokens(paragraph string) []domain.Token {
	var tokens []domain.Token
	for _, r := range paragraph {
		switch r {
		case '。':
			tokens = append(tokens, domain.Token{Surface: "。", POS: "記号", POSDetail1: "句点"})
		case '、':
			tokens = append(tokens, domain.Token{Surface: "、", POS: "記号", POSDetail1: "読点"})
		default:
			tokens = append(tokens, domain.Token{Surface: string(r), POS: "名詞", POSDetail1: "一般"})
		}
	}
	return tokens
}

var weatherTokens = map[string][]domain.Token{
	"今日は晴れです。明日は雨。": {
		{Surface: "今日", POS: "名詞", POSDetail1: "副詞可能"},
		{Surface: "は", POS: "助詞", POSDetail1: "係助詞"},
		{Surface: "晴れ", POS: "名詞", POSDetail1: "一般"},
		{Surface: "です", POS: "助動詞", POSDetail1: "*"},
		{Surface: "。", POS: "記号", POSDetail1: "句点"},
		{Surface: "明日", POS: "名詞", POSDetail1: "副詞可能"},
		{Surface: "は", POS: "助詞", POSDetail1: "係助詞"},
		{Surface: "雨", POS: "名詞", POSDetail1: "一般"},
		{Surface: "。", POS: "記号", POSDetail1: "句点"},
	},
}

func TestSegment_Scenario(t *testing.T) {
	tok := &fakeTokenizer{tokens: weatherTokens}
	s := New(tok)

	segments, err := s.Segment(context.Background(), "今日は晴れです。明日は雨。", &domain.SettingsOverride{
		MaxSegmentChars: domain.Float(16),
		MinJoinLength:   domain.Float(4),
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Segment{
		{ID: 0, Text: "今日は晴れです。"},
		{ID: 1, Text: "明日は雨。"},
	}, segments)
}

func TestSegment_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t", "　\r\n"} {
		tok := &fakeTokenizer{}
		segments, err := New(tok).Segment(context.Background(), in, nil)

		require.NoError(t, err)
		assert.NotNil(t, segments)
		assert.Empty(t, segments)
		assert.Zero(t, tok.readyCalls, "tokenizer must not be touched for %q", in)
	}
}

func TestSegment_Paragraphs(t *testing.T) {
	tok := &fakeTokenizer{}
	s := New(tok)

	segments, err := s.Segment(context.Background(), "吾輩は猫である\r\n\r\n\r\n  \n名前はまだ無い", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"吾輩は猫である", "名前はまだ無い"}, domain.SegmentTexts(segments))
	assert.Equal(t, []string{"吾輩は猫である", "名前はまだ無い"}, tok.queries)
}

func TestSegment_EmptyTokenResult(t *testing.T) {
	tok := &fakeTokenizer{tokens: map[string][]domain.Token{"ノイズ": nil}}

	segments, err := New(tok).Segment(context.Background(), "吾輩は猫である\nノイズ\n名前はまだ無い", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"吾輩は猫である", "名前はまだ無い"}, domain.SegmentTexts(segments))
}

func TestSegment_TokenizerErrors(t *testing.T) {
	t.Run("readiness", func(t *testing.T) {
		tok := &fakeTokenizer{readyErr: domain.ErrTokenizerUnavailable}

		segments, err := New(tok).Segment(context.Background(), "猫だ", nil)

		assert.ErrorIs(t, err, domain.ErrTokenizerUnavailable)
		assert.Nil(t, segments)
		assert.Empty(t, tok.queries)
	})

	t.Run("query", func(t *testing.T) {
		queryErr := errors.New("dictionary corrupted")
		tok := &fakeTokenizer{queryErr: queryErr}

		_, err := New(tok).Segment(context.Background(), "猫だ", nil)

		assert.ErrorIs(t, err, queryErr)
	})
}

func TestSegment_NormalisesSettings(t *testing.T) {
	tok := &fakeTokenizer{}
	text := "いろはにほへとちりぬるをわかよたれそつねならむ"

	segments, err := New(tok).Segment(context.Background(), text, &domain.SettingsOverride{
		MaxSegmentChars: domain.Float(1),
	})

	require.NoError(t, err)
	for _, seg := range segments {
		assert.LessOrEqual(t, domain.CharLen(seg.Text), domain.MinMaxSegmentChars)
	}
}

func TestSegment_Properties(t *testing.T) {
	text := "吾輩は猫である。名前はまだ無い。\n" +
		"どこで生れたかとんと見当がつかぬ。何でも薄暗いじめじめした所でニャーニャー泣いていた事だけは記憶している。\n\n" +
		"吾輩はここで始めて人間というものを見た、しかもあとで聞くとそれは書生という人間中で一番獰悪な種族であったそうだ。"

	for maxChars := domain.MinMaxSegmentChars; maxChars <= domain.MaxMaxSegmentChars; maxChars++ {
		override := &domain.SettingsOverride{MaxSegmentChars: domain.Float(float64(maxChars))}
		segments, err := New(&fakeTokenizer{}).Segment(context.Background(), text, override)
		require.NoError(t, err)
		require.NotEmpty(t, segments)

		for i, seg := range segments {
			assert.Equal(t, i, seg.ID)
			assert.NotEmpty(t, seg.Text)
			assert.LessOrEqual(t, domain.CharLen(seg.Text), maxChars+1, "max=%d %q", maxChars, seg.Text)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"a\r\nb", "a\nb"},
		{"今日は　晴れ", "今日は 晴れ"},
		{"a\t\t\tb", "a b"},
		{"  \n a \n  ", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sanitize(tt.in), "%q", tt.in)
	}
}

func TestSplitParagraphs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", " ", "c"}, SplitParagraphs("a\n\n\nb\n \nc"))
	assert.Equal(t, []string{"a"}, SplitParagraphs("a"))
}
