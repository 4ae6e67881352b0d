package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a b", StripHTML("  a \n b "))
	assert.Equal(t, "Tom & Jerry", StripHTML("Tom &amp; Jerry"))
	assert.Equal(t, "x y", StripHTML("<div>x</div><script>alert(1)</script><div>y</div>"))
	assert.Equal(t, "Vinamilk là doanh nghiệp hàng đầu", StripHTML("<p>Vinamilk là <b>doanh nghiệp</b></p><p>hàng đầu</p>"))
	assert.Empty(t, StripHTML(""))
}
