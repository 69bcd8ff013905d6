package ofxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sgmlSample = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<ACCTID>9876541111
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240105120000
<TRNAMT>1500.00
<FITID>2024010501
<NAME>PAYROLL
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

const xmlSample = `<?xml version="1.0" encoding="UTF-8"?>
<?OFX OFXHEADER="200" VERSION="220"?>
<OFX>
  <SIGNONMSGSRSV1>
    <SONRS>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
    </SONRS>
  </SIGNONMSGSRSV1>
</OFX>
`

func TestParseSGML(t *testing.T) {
	root, err := Parse([]byte(sgmlSample))
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "OFX", root.Name)

	severities := root.FindAll("SEVERITY")
	require.Len(t, severities, 1)
	assert.Equal(t, "INFO", severities[0].Text)

	trns := root.FindAll("STMTTRN")
	require.Len(t, trns, 1)
	assert.Equal(t, "PAYROLL", trns[0].Child("NAME").Text)
	assert.Equal(t, "1500.00", trns[0].Child("TRNAMT").Text)
}

func TestParseXML(t *testing.T) {
	root, err := Parse([]byte(xmlSample))
	require.NoError(t, err)
	assert.Equal(t, "OFX", root.Name)
	require.Len(t, root.FindAll("SEVERITY"), 1)
}

func TestParseLowercaseTags(t *testing.T) {
	root, err := Parse([]byte("<ofx><status><code>0<severity>info</status></ofx>"))
	require.NoError(t, err)
	assert.Equal(t, "OFX", root.Name)
	severities := root.FindAll("SEVERITY")
	require.Len(t, severities, 1)
	assert.Equal(t, "info", severities[0].Text)
}

func TestParseEntities(t *testing.T) {
	root, err := Parse([]byte("<OFX><MEMO>COFFEE &amp; CAKE</MEMO></OFX>"))
	require.NoError(t, err)
	assert.Equal(t, "COFFEE & CAKE", root.FindAll("MEMO")[0].Text)
}

func TestParseEmptyLeafKeepsSiblings(t *testing.T) {
	// A leaf with no value still ends at the next tag; the elements after
	// it stay siblings instead of becoming its children.
	input := `<OFX>
<STMTTRN>
<FITID>1
<MEMO>
<NAME>COFFEE SHOP
</STMTTRN>
</OFX>`

	root, err := Parse([]byte(input))
	require.NoError(t, err)

	trns := root.FindAll("STMTTRN")
	require.Len(t, trns, 1)
	require.Len(t, trns[0].Children, 3)

	memo := trns[0].Child("MEMO")
	require.NotNil(t, memo)
	assert.Equal(t, "", memo.Text)
	assert.Empty(t, memo.Children)

	name := trns[0].Child("NAME")
	require.NotNil(t, name)
	assert.Equal(t, "COFFEE SHOP", name.Text)
}

func TestParseRootWithAttributes(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<OFX xmlns="http://ofx.net/types/2003/04">
  <SIGNONMSGSRSV1>
    <SONRS>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
    </SONRS>
  </SIGNONMSGSRSV1>
</OFX>`

	root, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "OFX", root.Name)
	require.Len(t, root.FindAll("SEVERITY"), 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no OFX element", input: "OFXHEADER:100\nDATA:OFXSGML\n"},
		{name: "unterminated tag", input: "<OFX><STMTTRN"},
		{name: "mismatched closing tag", input: "<OFX></WRONG>"},
		{name: "empty input", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("clean tree passes", func(t *testing.T) {
		root, err := Parse([]byte(sgmlSample))
		require.NoError(t, err)
		assert.NoError(t, Validate(root))
	})

	t.Run("lowercase severity fails", func(t *testing.T) {
		root := &Node{Name: "OFX", Children: []*Node{
			{Name: "SEVERITY", Text: "info"},
		}}
		err := Validate(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEVERITY")
	})

	t.Run("name not last in transaction fails", func(t *testing.T) {
		root := &Node{Name: "OFX", Children: []*Node{
			{Name: "STMTTRN", Children: []*Node{
				{Name: "NAME", Text: "PAYROLL"},
				{Name: "TRNAMT", Text: "1500.00"},
			}},
		}}
		err := Validate(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NAME")
	})
}

func TestRepair(t *testing.T) {
	root := &Node{Name: "OFX", Children: []*Node{
		{Name: "SEVERITY", Text: "Info"},
		{Name: "STMTTRN", Children: []*Node{
			{Name: "NAME", Text: "PAYROLL"},
			{Name: "FITID", Text: "1"},
			{Name: "TRNAMT", Text: "1500.00"},
		}},
	}}
	require.Error(t, Validate(root))

	Repair(root)
	require.NoError(t, Validate(root))

	assert.Equal(t, "INFO", root.Children[0].Text)
	trn := root.Children[1]
	assert.Equal(t, "NAME", trn.Children[len(trn.Children)-1].Name)
	// Relative order of the other elements is preserved.
	assert.Equal(t, "FITID", trn.Children[0].Name)
	assert.Equal(t, "TRNAMT", trn.Children[1].Name)
}

func TestRepairIdempotent(t *testing.T) {
	root := &Node{Name: "OFX", Children: []*Node{
		{Name: "SEVERITY", Text: "info"},
		{Name: "STMTTRN", Children: []*Node{
			{Name: "NAME", Text: "X"},
			{Name: "FITID", Text: "1"},
		}},
	}}
	first := string(MarshalXML(Repair(root)))
	second := string(MarshalXML(Repair(root)))
	assert.Equal(t, first, second)
}

func TestRepairLeavesCleanTreeAlone(t *testing.T) {
	root, err := Parse([]byte(sgmlSample))
	require.NoError(t, err)
	before := string(MarshalXML(root))
	Repair(root)
	assert.Equal(t, before, string(MarshalXML(root)))
}

func TestMarshalXML(t *testing.T) {
	root := &Node{Name: "OFX", Children: []*Node{
		{Name: "MEMO", Text: "A & B <C>"},
	}}
	assert.Equal(t, "<OFX><MEMO>A &amp; B &lt;C&gt;</MEMO></OFX>", string(MarshalXML(root)))
}

func TestMarshalXMLRoundTrip(t *testing.T) {
	root, err := Parse([]byte(sgmlSample))
	require.NoError(t, err)

	reparsed, err := Parse(MarshalXML(root))
	require.NoError(t, err)
	assert.Equal(t, string(MarshalXML(root)), string(MarshalXML(reparsed)))
}
