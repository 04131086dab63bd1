package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cellDoc = `<html><body><table class="tab1"><tr>
<td class="td5c">11131<br>1</td>
<td class="td2w">AT<span class="tooltip2w">Marcus  Bärschneider</span></td>
<td class="td5">Maik Rau / Carina Rau (617)<br><i>Flensburger TC</i></td>
</tr></table></body></html>`

func TestNode(t *testing.T) {
	root, err := Parse(cellDoc)
	require.NoError(t, err)
	assert.Equal(t, "", root.Tag())

	tables := root.Find("table.tab1")
	require.Len(t, tables, 1)
	assert.Equal(t, "table", tables[0].Tag())

	cells := tables[0].Find("td")
	require.Len(t, cells, 3)

	t.Run("lines split at br", func(t *testing.T) {
		assert.Equal(t, []string{"11131", "1"}, cells[0].Lines())
		assert.Equal(t, []string{"Maik Rau / Carina Rau (617)", "Flensburger TC"}, cells[2].Lines())
	})

	t.Run("own text skips child elements", func(t *testing.T) {
		assert.Equal(t, "AT", cells[1].OwnText())
		assert.Equal(t, "ATMarcus Bärschneider", cells[1].Text())
	})

	t.Run("attributes and classes", func(t *testing.T) {
		class, ok := cells[1].Attr("class")
		assert.True(t, ok)
		assert.Equal(t, "td2w", class)
		assert.True(t, cells[1].HasClass("td2w"))
		assert.False(t, cells[1].HasClass("td5"))
	})

	t.Run("children are elements only", func(t *testing.T) {
		children := cells[2].Children()
		require.Len(t, children, 2)
		assert.Equal(t, "br", children[0].Tag())
		assert.Equal(t, "i", children[1].Tag())
	})
}
