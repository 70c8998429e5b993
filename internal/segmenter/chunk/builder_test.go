package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

func noun(s string) domain.Token {
	return domain.Token{Surface: s, POS: "名詞", POSDetail1: "一般"}
}

func period() domain.Token {
	return domain.Token{Surface: "。", POS: "記号", POSDetail1: "句点"}
}

func particle(s, detail string) domain.Token {
	return domain.Token{Surface: s, POS: "助詞", POSDetail1: detail}
}

func texts(segments []domain.Segment) []string {
	return domain.SegmentTexts(segments)
}

func TestBuilder_HardBoundary(t *testing.T) {
	b := NewBuilder(domain.DefaultSegmentationSettings())

	b.Feed([]domain.Token{
		noun("今日"), particle("は", "係助詞"), noun("晴れ"),
		{Surface: "です", POS: "助動詞"}, period(),
		noun("明日"), particle("は", "係助詞"), noun("雨"), period(),
	})

	assert.Equal(t, []string{"今日は晴れです", "。", "明日は雨。"}, texts(b.Segments()))
}

func TestBuilder_SoftBoundaryNeedsThreshold(t *testing.T) {
	// max 16 gives a soft-break threshold of 5.
	b := NewBuilder(domain.DefaultSegmentationSettings())

	b.Feed([]domain.Token{
		noun("私たち"), particle("が", "格助詞"),
		noun("魚"), particle("を", "格助詞"),
		noun("食べ"), noun("た"),
	})

	assert.Equal(t, []string{"私たちが魚を", "食べた"}, texts(b.Segments()))
}

func TestBuilder_PreFlushOnOverflow(t *testing.T) {
	settings := domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 1}
	b := NewBuilder(settings)

	b.Feed([]domain.Token{noun("東京"), noun("特許"), noun("許可局長")})

	assert.Equal(t, []string{"東京特許", "許可局長"}, texts(b.Segments()))
}

func TestBuilder_HardTokenIsNeverPushedForward(t *testing.T) {
	settings := domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 1}
	b := NewBuilder(settings)

	b.Feed([]domain.Token{noun("あいうえお"), {Surface: "！？", POS: "記号", POSDetail1: "一般"}})

	require.Len(t, b.Segments(), 1)
	assert.Equal(t, "あいうえお！？", b.Segments()[0].Text)
}

func TestBuilder_LengthReached(t *testing.T) {
	settings := domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 1}
	b := NewBuilder(settings)

	b.Feed([]domain.Token{noun("あいう"), noun("えおか"), noun("き")})

	assert.Equal(t, []string{"あいうえおか", "き"}, texts(b.Segments()))
}

func TestBuilder_OversizedToken(t *testing.T) {
	settings := domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 1}
	b := NewBuilder(settings)

	b.Feed([]domain.Token{noun("あ"), noun("いろはにほへとちりぬ")})

	assert.Equal(t, []string{"あ", "いろはにほへとちりぬ"}, texts(b.Segments()))
}

func TestBuilder_SkipsBlankSurfaces(t *testing.T) {
	b := NewBuilder(domain.DefaultSegmentationSettings())

	b.Feed([]domain.Token{noun(" "), noun(" 猫 "), noun(""), noun("だ")})

	assert.Equal(t, []string{"猫だ"}, texts(b.Segments()))
}

func TestBuilder_ParagraphsNeverShareChunks(t *testing.T) {
	b := NewBuilder(domain.DefaultSegmentationSettings())

	b.Feed([]domain.Token{noun("一")})
	b.Feed(nil)
	b.Feed([]domain.Token{noun("二")})

	assert.Equal(t, []string{"一", "二"}, texts(b.Segments()))
}

func TestBuilder_DenseIDs(t *testing.T) {
	b := NewBuilder(domain.SegmentationSettings{MaxSegmentChars: 6, MinJoinLength: 1})

	b.Feed([]domain.Token{noun("あいうえおか"), noun("きくけこさし"), period(), noun("す")})

	for i, seg := range b.Segments() {
		assert.Equal(t, i, seg.ID)
	}
}

func TestBuilder_FlushIsIdempotent(t *testing.T) {
	b := NewBuilder(domain.DefaultSegmentationSettings())

	b.Flush()
	b.Flush()
	assert.Empty(t, b.Segments())

	b.Feed([]domain.Token{noun("猫")})
	b.Flush()
	assert.Len(t, b.Segments(), 1)
}
