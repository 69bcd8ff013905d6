package qfxparser

import (
	"encoding/xml"

	"fjacquet/qfx-ledger/internal/parsererror"
)

// Typed aggregates decoded from the repaired OFX tree. Field values stay as
// strings here; parsing into decimals and timestamps happens during
// normalization, where a missing required field is a terminal failure.

type ofxDocument struct {
	XMLName    xml.Name    `xml:"OFX"`
	BankMsgs   *bankMsgSet `xml:"BANKMSGSRSV1"`
	CCMsgs     *ccMsgSet   `xml:"CREDITCARDMSGSRSV1"`
	InvMsgs    *invMsgSet  `xml:"INVSTMTMSGSRSV1"`
	Securities *secList    `xml:"SECLISTMSGSRSV1>SECLIST"`
}

type bankMsgSet struct {
	Statements []bankStatementRS `xml:"STMTTRNRS>STMTRS"`
}

type ccMsgSet struct {
	Statements []ccStatementRS `xml:"CCSTMTTRNRS>CCSTMTRS"`
}

type invMsgSet struct {
	Statements []invStatementRS `xml:"INVSTMTTRNRS>INVSTMTRS"`
}

type bankStatementRS struct {
	CurDef       string     `xml:"CURDEF"`
	AcctID       string     `xml:"BANKACCTFROM>ACCTID"`
	Transactions []stmtTrn  `xml:"BANKTRANLIST>STMTTRN"`
	LedgerBal    *ledgerBal `xml:"LEDGERBAL"`
}

type ccStatementRS struct {
	CurDef       string     `xml:"CURDEF"`
	AcctID       string     `xml:"CCACCTFROM>ACCTID"`
	Transactions []stmtTrn  `xml:"BANKTRANLIST>STMTTRN"`
	LedgerBal    *ledgerBal `xml:"LEDGERBAL"`
}

type stmtTrn struct {
	TrnType  string `xml:"TRNTYPE"`
	DtPosted string `xml:"DTPOSTED"`
	TrnAmt   string `xml:"TRNAMT"`
	FitID    string `xml:"FITID"`
	Name     string `xml:"NAME"`
	Memo     string `xml:"MEMO"`
}

type ledgerBal struct {
	BalAmt string `xml:"BALAMT"`
	DtAsOf string `xml:"DTASOF"`
}

type invStatementRS struct {
	DtAsOf   string      `xml:"DTASOF"`
	CurDef   string      `xml:"CURDEF"`
	Broker   string      `xml:"INVACCTFROM>BROKERID"`
	AcctID   string      `xml:"INVACCTFROM>ACCTID"`
	TranList invTranList `xml:"INVTRANLIST"`
}

// invTranCore is the transaction core block shared by every investment
// variant.
type invTranCore struct {
	FitID    string `xml:"FITID"`
	DtSettle string `xml:"DTSETTLE"`
	Memo     string `xml:"MEMO"`
}

// simpleInvTran covers the income, reinvest, sell and transfer variants,
// which share one shape: the core block plus units, price and total at the
// variant level. Transfers carry no price and no total.
type simpleInvTran struct {
	Core       invTranCore `xml:"INVTRAN"`
	SecID      string      `xml:"SECID>UNIQUEID"`
	IncomeType string      `xml:"INCOMETYPE"`
	Units      string      `xml:"UNITS"`
	UnitPrice  string      `xml:"UNITPRICE"`
	Total      string      `xml:"TOTAL"`
}

// buyInvTran covers the buy variant, whose core is nested one level deeper
// inside the INVBUY block.
type buyInvTran struct {
	Buy struct {
		Core      invTranCore `xml:"INVTRAN"`
		SecID     string      `xml:"SECID>UNIQUEID"`
		Units     string      `xml:"UNITS"`
		UnitPrice string      `xml:"UNITPRICE"`
		Total     string      `xml:"TOTAL"`
	} `xml:"INVBUY"`
}

// rawInvTran is the closed tagged union of investment transaction variants.
// Exactly one of Simple or Buy is set, according to Variant.
type rawInvTran struct {
	Variant string
	Simple  *simpleInvTran
	Buy     *buyInvTran
}

const (
	variantIncome   = "INCOME"
	variantReinvest = "REINVEST"
	variantSellMF   = "SELLMF"
	variantTransfer = "TRANSFER"
	variantBuyMF    = "BUYMF"
)

// invTranList decodes an INVTRANLIST block, preserving document order across
// variants. An element outside the known variant set fails the decode: a
// silently dropped variant would understate the statement.
type invTranList struct {
	Transactions []rawInvTran
}

func (l *invTranList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "DTSTART", "DTEND":
				if err := d.Skip(); err != nil {
					return err
				}
			case variantIncome, variantReinvest, variantSellMF, variantTransfer:
				var simple simpleInvTran
				if err := d.DecodeElement(&simple, &t); err != nil {
					return err
				}
				l.Transactions = append(l.Transactions, rawInvTran{
					Variant: t.Name.Local,
					Simple:  &simple,
				})
			case variantBuyMF:
				var buy buyInvTran
				if err := d.DecodeElement(&buy, &t); err != nil {
					return err
				}
				l.Transactions = append(l.Transactions, rawInvTran{
					Variant: t.Name.Local,
					Buy:     &buy,
				})
			default:
				return &parsererror.UnsupportedTransactionVariantError{
					Variant: t.Name.Local,
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type secList struct {
	MutualFunds []mfInfo    `xml:"MFINFO"`
	Stocks      []stockInfo `xml:"STOCKINFO"`
}

// secInfo is the security core shared by the mutual-fund and stock entries.
type secInfo struct {
	UniqueID  string `xml:"SECID>UNIQUEID"`
	Name      string `xml:"SECNAME"`
	Ticker    string `xml:"TICKER"`
	UnitPrice string `xml:"UNITPRICE"`
	DtAsOf    string `xml:"DTASOF"`
}

// mfInfo carries the instrument type as MFTYPE.
type mfInfo struct {
	SecInfo secInfo `xml:"SECINFO"`
	MFType  string  `xml:"MFTYPE"`
}

// stockInfo carries the instrument type as STOCKTYPE.
type stockInfo struct {
	SecInfo   secInfo `xml:"SECINFO"`
	StockType string  `xml:"STOCKTYPE"`
}
