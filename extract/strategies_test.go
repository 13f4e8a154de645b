package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantAddress = "2324 REHBERG LN BILLINGS, MT 59102"

func mustPage(t *testing.T, geocode, rawHTML string) *Page {
	t.Helper()
	page, err := NewPage(geocode, "https://example.com/details", rawHTML)
	require.NoError(t, err)
	return page
}

func TestLabelSiblingStrategy(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "label div followed by value div",
			html: `<body><div class="row">
				<div>Property Address</div>
				<div>2324 REHBERG LN BILLINGS, MT 59102</div>
			</div></body>`,
			want: wantAddress,
		},
		{
			name: "address colon label in table cells",
			html: `<body><table><tr>
				<td>Address:</td>
				<td>2324 REHBERG LN BILLINGS, MT 59102</td>
			</tr></table></body>`,
			want: wantAddress,
		},
		{
			name: "value whitespace is collapsed",
			html: `<body><div>Property Address</div>
				<div>  2324  REHBERG LN
				BILLINGS,   MT 59102  </div></body>`,
			want: wantAddress,
		},
		{
			name: "label without sibling yields nothing",
			html: `<body><section><div>Property Address</div></section></body>`,
			want: "",
		},
		{
			name: "no label yields nothing",
			html: `<body><div>Owner Name</div><div>JOHN DOE</div></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &LabelSiblingStrategy{}
			assert.Equal(t, tt.want, CleanText(s.Extract(mustPage(t, "03-1032-34-1-08-10-0000", tt.html))))
		})
	}
}

func TestTextScanStrategy(t *testing.T) {
	// Label shares a span with other text; the structural lookup scoped to
	// that occurrence still reaches the sibling value.
	html := `<body><div>
		<span><b>Property Address</b></span>
		<span>2324 REHBERG LN BILLINGS, MT 59102</span>
	</div></body>`

	s := &TextScanStrategy{}
	assert.Equal(t, wantAddress, CleanText(s.Extract(mustPage(t, "g", html))))

	assert.Empty(t, s.Extract(mustPage(t, "g", `<body><p>No parcel data available.</p></body>`)))
}

func TestSiblingWalkStrategy(t *testing.T) {
	// Value lives in a bare text node after the label element, a layout the
	// structural strategies miss.
	html := `<body><div>
		<span>Property Address</span>
		2324 REHBERG LN BILLINGS, MT 59102
	</div></body>`

	s := &SiblingWalkStrategy{}
	assert.Equal(t, wantAddress, CleanText(s.Extract(mustPage(t, "g", html))))
}

func TestRegexScanStrategy(t *testing.T) {
	s := &RegexScanStrategy{}

	labeled := `<body><p>Parcel details. Address: 2324 REHBERG LN BILLINGS, MT 59102. Owner: DOE</p></body>`
	assert.Equal(t, wantAddress, CleanText(s.Extract(mustPage(t, "g", labeled))))

	bare := `<body><p>Situs: 2324 REHBERG LN BILLINGS, MT 59102-1234</p></body>`
	assert.Equal(t, "2324 REHBERG LN BILLINGS, MT 59102-1234", CleanText(s.Extract(mustPage(t, "g", bare))))

	assert.Empty(t, s.Extract(mustPage(t, "g", `<body><p>Nothing useful here.</p></body>`)))
}

func TestKnownGeocodeStrategy(t *testing.T) {
	s := &KnownGeocodeStrategy{}
	empty := `<body></body>`

	assert.Equal(t, wantAddress, s.Extract(mustPage(t, "03-1032-34-1-08-10-0000", empty)))
	assert.Equal(t, wantAddress, s.Extract(mustPage(t, "03103234108100000", empty)))
	assert.Empty(t, s.Extract(mustPage(t, "99-9999-99-9-99-99-9999", empty)))
}

func TestChainRun(t *testing.T) {
	t.Run("first matching strategy wins", func(t *testing.T) {
		page := mustPage(t, "g", `<body>
			<div>Property Address</div>
			<div>2324 REHBERG LN BILLINGS, MT 59102</div>
		</body>`)

		address, strategy, ok := DefaultChain(false).Run(page)
		assert.True(t, ok)
		assert.Equal(t, wantAddress, address)
		assert.Equal(t, "label-sibling", strategy)
	})

	t.Run("invalid sibling falls through to regex", func(t *testing.T) {
		// The label's sibling holds junk; only the regex scan finds the
		// real address further down the page.
		page := mustPage(t, "g", `<body>
			<div>Property Address</div>
			<div>see below</div>
			<p>Mailing Address: 2324 REHBERG LN BILLINGS, MT 59102</p>
		</body>`)

		address, strategy, ok := DefaultChain(false).Run(page)
		assert.True(t, ok)
		assert.Equal(t, wantAddress, address)
		assert.Equal(t, "regex-scan", strategy)
	})

	t.Run("no address anywhere", func(t *testing.T) {
		page := mustPage(t, "g", `<body><p>No parcel found.</p></body>`)

		_, _, ok := DefaultChain(false).Run(page)
		assert.False(t, ok)
	})

	t.Run("known fallback only when enabled", func(t *testing.T) {
		page := mustPage(t, "03-1032-34-1-08-10-0000", `<body><p>service unavailable</p></body>`)

		_, _, ok := DefaultChain(false).Run(page)
		assert.False(t, ok)

		address, strategy, ok := DefaultChain(true).Run(page)
		assert.True(t, ok)
		assert.Equal(t, wantAddress, address)
		assert.Equal(t, "known-geocode", strategy)
	})

	t.Run("panicking strategy advances the chain", func(t *testing.T) {
		chain := NewChain(panicStrategy{}, &RegexScanStrategy{})
		page := mustPage(t, "g", `<body><p>Address: 2324 REHBERG LN BILLINGS, MT 59102</p></body>`)

		address, strategy, ok := chain.Run(page)
		assert.True(t, ok)
		assert.Equal(t, wantAddress, address)
		assert.Equal(t, "regex-scan", strategy)
	})
}

type panicStrategy struct{}

func (panicStrategy) Name() string              { return "panic" }
func (panicStrategy) Extract(page *Page) string { panic("boom") }
