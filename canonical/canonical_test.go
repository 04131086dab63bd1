package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyPage = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">
<html lang="de"><head><meta charset="windows-1252"><title>11.05.2024&nbsp;Hgr.II  D Standard "1"</title><style>td{}</style></head>
<body class="x"><!-- generated --><div class="eventhead"><table><tr><td class="a">Titel</td><td>&nbsp;</td></tr></table></div>
<p class="pfoot">Erstellt mit <a href="x">TopTurnier</a></p>
<div><span class="tooltip">Jan</span><span></span><font>x</font> Block</div>
</body></html>`

const legacyPageCanonical = `<!DOCTYPE html>
<html>
 <head>
  <meta content="text/html; charset=utf-8" http-equiv="Content-Type"/>
  <title>
   11.05.2024 Hgr.II D Standard
  </title>
 </head>
 <body>
  <div>
   <table>
    <tbody>
     <tr>
      <td>
       Titel
      </td>
     </tr>
    </tbody>
   </table>
  </div>
  <div>
   <span>
    Jan
   </span>
   Block
  </div>
 </body>
</html>
`

func TestCanonicalize(t *testing.T) {
	got, err := Canonicalize(legacyPage, Rules{Preserve: []string{"td", "tr"}})
	require.NoError(t, err)
	assert.Equal(t, legacyPageCanonical, got)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		rules Rules
	}{
		{name: "legacy page", raw: legacyPage, rules: Rules{Preserve: []string{"td", "tr"}}},
		{name: "text around removed element", raw: `<div>foo<span></span>bar</div>`},
		{name: "unwrapped wrapper", raw: `<table><tr><td>610<nobr>Jan Dingerkus</nobr></td></tr></table>`, rules: Rules{Unwrap: []string{"nobr"}, Preserve: []string{"td", "tr"}}},
		{name: "several padding cells", raw: `<table><tr><td>A</td><td></td><td> </td><td>B</td></tr></table>`, rules: Rules{Preserve: []string{"td"}}},
		{name: "empty rows", raw: `<table><tr><td></td></tr><tr class="td0v"><td>x</td></tr><tr><td>1</td><td></td></tr></table>`, rules: Rules{Decompose: []string{"tr.td0v"}, Preserve: []string{"td", "tr"}, DropSingleEmptyCellRows: true}},
		{name: "escaped text", raw: `<title>A &amp; B</title><div>1 &lt; 2 &amp; 3</div>`},
		{name: "no title", raw: `<div><br></div>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			once, err := Canonicalize(tc.raw, tc.rules)
			require.NoError(t, err)
			twice, err := Canonicalize(once, tc.rules)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestCanonicalizeBody(t *testing.T) {
	head := "<!DOCTYPE html>\n<html>\n <head>\n  <meta content=\"text/html; charset=utf-8\" http-equiv=\"Content-Type\"/>\n  <title></title>\n </head>\n"

	tests := []struct {
		name  string
		raw   string
		rules Rules
		body  string
	}{
		{
			name:  "decomposes dialect noise",
			raw:   `<div class="ergwertinfo">Hinweis</div><div>Ergebnis</div>`,
			rules: Rules{Decompose: []string{"div.ergwertinfo"}},
			body:  " <body>\n  <div>\n   Ergebnis\n  </div>\n </body>\n",
		},
		{
			name:  "unwrap keeps content",
			raw:   `<div><center><b>Endrunde</b></center></div>`,
			rules: Rules{Unwrap: []string{"center"}},
			body:  " <body>\n  <div>\n   <b>\n    Endrunde\n   </b>\n  </div>\n </body>\n",
		},
		{
			name: "removes empty elements to a fixed point",
			raw:  `<div><div><span> </span></div></div><hr><br>`,
			body: " <body>\n  <hr/>\n  <br/>\n </body>\n",
		},
		{
			name:  "keeps preserved empty cells",
			raw:   `<table><tr><td>610</td><td></td></tr><tr><td>1</td><td></td></tr></table>`,
			rules: Rules{Preserve: []string{"td", "tr"}},
			body:  " <body>\n  <table>\n   <tbody>\n    <tr>\n     <td>\n      610\n     </td>\n    </tr>\n    <tr>\n     <td>\n      1\n     </td>\n     <td></td>\n    </tr>\n   </tbody>\n  </table>\n </body>\n",
		},
		{
			name:  "drops rows with one empty cell",
			raw:   `<div>x</div><table><tr><td>1</td></tr><tr><td></td></tr></table>`,
			rules: Rules{Preserve: []string{"td", "tr"}, DropSingleEmptyCellRows: true},
			body:  " <body>\n  <div>\n   x\n  </div>\n  <table>\n   <tbody>\n    <tr>\n     <td>\n      1\n     </td>\n    </tr>\n   </tbody>\n  </table>\n </body>\n",
		},
		{
			name:  "keeps single cell rows holding a break",
			raw:   `<div>x</div><table><tr><td>1</td></tr><tr><td><br></td></tr></table>`,
			rules: Rules{Preserve: []string{"td", "tr"}, DropSingleEmptyCellRows: true},
			body:  " <body>\n  <div>\n   x\n  </div>\n  <table>\n   <tbody>\n    <tr>\n     <td>\n      1\n     </td>\n    </tr>\n    <tr>\n     <td>\n      <br/>\n     </td>\n    </tr>\n   </tbody>\n  </table>\n </body>\n",
		},
		{
			name: "strips counter artifacts from text",
			raw:  `<div>Endrunde "2"</div>`,
			body: " <body>\n  <div>\n   Endrunde\n  </div>\n </body>\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Canonicalize(tc.raw, tc.rules)
			require.NoError(t, err)
			assert.Equal(t, head+tc.body+"</html>\n", got)
		})
	}
}

func TestNewRejectsBadSelector(t *testing.T) {
	_, err := New(Rules{Unwrap: []string{"td["}})
	assert.Error(t, err)

	_, err = New(Rules{Decompose: []string{"div[class"}})
	assert.Error(t, err)
}
