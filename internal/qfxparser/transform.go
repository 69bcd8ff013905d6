package qfxparser

import (
	"fmt"
	"sort"

	"fjacquet/qfx-ledger/internal/dateutils"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
)

// transformDocument classifies the decoded document and normalizes it into a
// StatementList. Classification never guesses: a document without bank,
// credit-card or investment message sets is rejected outright.
func transformDocument(doc *ofxDocument, filePath string) (*models.StatementList, error) {
	bankStatements := collectBankStatements(doc)

	switch {
	case len(bankStatements) > 0:
		return transformStatementList(bankStatements)
	case doc.InvMsgs != nil:
		return transformInvestStatementList(doc)
	default:
		return nil, &parsererror.UnsupportedDocumentShapeError{FilePath: filePath}
	}
}

// collectBankStatements flattens bank and credit-card statements into one
// list; the two message sets share the statement shape.
func collectBankStatements(doc *ofxDocument) []bankStatementRS {
	var statements []bankStatementRS
	if doc.BankMsgs != nil {
		statements = append(statements, doc.BankMsgs.Statements...)
	}
	if doc.CCMsgs != nil {
		for _, cc := range doc.CCMsgs.Statements {
			statements = append(statements, bankStatementRS(cc))
		}
	}
	return statements
}

// Bank and credit-card statements

func transformStatementList(rawStatements []bankStatementRS) (*models.StatementList, error) {
	list := &models.StatementList{}
	for _, raw := range rawStatements {
		statement, err := transformStatement(raw)
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, statement)
	}
	return list, nil
}

func transformStatement(raw bankStatementRS) (*models.Statement, error) {
	currency := raw.CurDef

	transactions := make([]models.Transaction, 0, len(raw.Transactions))
	for _, rawTrn := range raw.Transactions {
		transaction, err := transformTransaction(rawTrn, currency)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].DatePosted.Before(transactions[j].DatePosted)
	})

	statement := &models.Statement{
		AcctID:       raw.AcctID,
		Currency:     currency,
		Transactions: transactions,
	}

	if raw.LedgerBal != nil && raw.LedgerBal.BalAmt != "" {
		balance, err := transformBalance(*raw.LedgerBal)
		if err != nil {
			return nil, err
		}
		statement.LedgerBalance = balance
	}

	log.Debug("Transformed statement",
		logging.Field{Key: logging.FieldAccount, Value: statement.AcctID},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return statement, nil
}

func transformTransaction(raw stmtTrn, currency string) (models.Transaction, error) {
	if raw.FitID == "" {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "FITID",
			Value:  raw.Name,
			Err:    fmt.Errorf("transaction has no institution id"),
		}
	}

	datePosted, err := dateutils.ParseOFXDate(raw.DtPosted)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "DTPOSTED",
			Value:  raw.DtPosted,
			Err:    err,
		}
	}

	amount, err := decimal.NewFromString(raw.TrnAmt)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "TRNAMT",
			Value:  raw.TrnAmt,
			Err:    err,
		}
	}

	return models.Transaction{
		FitID:      raw.FitID,
		DatePosted: datePosted,
		Memo:       raw.Memo,
		Name:       raw.Name,
		TrnType:    raw.TrnType,
		Amount:     amount,
		Currency:   currency,
	}, nil
}

func transformBalance(raw ledgerBal) (*models.Balance, error) {
	amount, err := decimal.NewFromString(raw.BalAmt)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: parserName,
			Field:  "BALAMT",
			Value:  raw.BalAmt,
			Err:    err,
		}
	}
	asOf, err := dateutils.ParseOFXDate(raw.DtAsOf)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: parserName,
			Field:  "LEDGERBAL/DTASOF",
			Value:  raw.DtAsOf,
			Err:    err,
		}
	}
	return &models.Balance{Amount: amount, AsOf: asOf}, nil
}

// Investment statements

func transformInvestStatementList(doc *ofxDocument) (*models.StatementList, error) {
	securities, err := buildSecurityTable(doc.Securities)
	if err != nil {
		return nil, err
	}

	list := &models.StatementList{}
	for _, raw := range doc.InvMsgs.Statements {
		statement, err := transformInvestStatement(raw, securities)
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, statement)
	}
	return list, nil
}

func transformInvestStatement(raw invStatementRS, securities map[string]models.Security) (*models.InvestStatement, error) {
	currency := raw.CurDef

	transactions := make([]models.InvestTransaction, 0, len(raw.TranList.Transactions))
	for _, rawTrn := range raw.TranList.Transactions {
		transaction, err := transformInvestTransaction(rawTrn, securities, currency)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].DatePosted.Before(transactions[j].DatePosted)
	})

	asOf, err := dateutils.ParseOFXDate(raw.DtAsOf)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: parserName,
			Field:  "DTASOF",
			Value:  raw.DtAsOf,
			Err:    err,
		}
	}

	statement := &models.InvestStatement{
		AcctID:       raw.AcctID,
		Currency:     currency,
		AsOf:         asOf,
		Broker:       raw.Broker,
		Securities:   securities,
		Transactions: transactions,
	}
	log.Debug("Transformed investment statement",
		logging.Field{Key: logging.FieldAccount, Value: statement.AcctID},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return statement, nil
}

// transformInvestTransaction dispatches on the raw variant. The variant set
// is closed; the decoder has already rejected anything outside it.
func transformInvestTransaction(raw rawInvTran, securities map[string]models.Security, currency string) (models.InvestTransaction, error) {
	switch raw.Variant {
	case variantIncome, variantReinvest, variantSellMF, variantTransfer:
		return transformSimpleInvestTransaction(raw, securities, currency)
	case variantBuyMF:
		return transformBuyTransaction(raw, securities, currency)
	default:
		return models.InvestTransaction{}, &parsererror.UnsupportedTransactionVariantError{Variant: raw.Variant}
	}
}

// defaultKind is the kind used when the institution provides no income type.
// Sell and transfer variants name their own kind; income and reinvest
// records without an explicit type are deliberately kept as misc rather than
// guessed.
func defaultKind(variant string) models.InvestKind {
	switch variant {
	case variantSellMF:
		return models.InvestSell
	case variantTransfer:
		return models.InvestTransfer
	default:
		return models.InvestMisc
	}
}

func transformSimpleInvestTransaction(raw rawInvTran, securities map[string]models.Security, currency string) (models.InvestTransaction, error) {
	simple := raw.Simple

	ticker, err := resolveTicker(securities, simple.SecID)
	if err != nil {
		return models.InvestTransaction{}, err
	}

	core, err := transformInvestCore(simple.Core, currency)
	if err != nil {
		return models.InvestTransaction{}, err
	}

	kind := defaultKind(raw.Variant)
	if simple.IncomeType != "" {
		kind = models.KindFromIncomeType(simple.IncomeType)
	}

	transaction := models.InvestTransaction{
		Transaction: core,
		Ticker:      ticker,
		Kind:        kind,
	}

	// Transfers carry no price and no total; amount stays zero.
	if simple.Total != "" {
		amount, err := decimal.NewFromString(simple.Total)
		if err != nil {
			return models.InvestTransaction{}, &parsererror.ParseError{
				Parser: parserName,
				Field:  "TOTAL",
				Value:  simple.Total,
				Err:    err,
			}
		}
		transaction.Amount = amount
	}

	if transaction.Units, err = optionalDecimal("UNITS", simple.Units); err != nil {
		return models.InvestTransaction{}, err
	}
	if transaction.UnitPrice, err = optionalDecimal("UNITPRICE", simple.UnitPrice); err != nil {
		return models.InvestTransaction{}, err
	}

	return transaction, nil
}

func transformBuyTransaction(raw rawInvTran, securities map[string]models.Security, currency string) (models.InvestTransaction, error) {
	buy := raw.Buy.Buy

	ticker, err := resolveTicker(securities, buy.SecID)
	if err != nil {
		return models.InvestTransaction{}, err
	}

	core, err := transformInvestCore(buy.Core, currency)
	if err != nil {
		return models.InvestTransaction{}, err
	}

	amount, err := decimal.NewFromString(buy.Total)
	if err != nil {
		return models.InvestTransaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "INVBUY/TOTAL",
			Value:  buy.Total,
			Err:    err,
		}
	}

	transaction := models.InvestTransaction{
		Transaction: core,
		Ticker:      ticker,
		Kind:        models.InvestBuy,
	}
	transaction.Amount = amount

	if transaction.Units, err = optionalDecimal("UNITS", buy.Units); err != nil {
		return models.InvestTransaction{}, err
	}
	if transaction.UnitPrice, err = optionalDecimal("UNITPRICE", buy.UnitPrice); err != nil {
		return models.InvestTransaction{}, err
	}

	return transaction, nil
}

// transformInvestCore extracts the fields every investment variant shares
// from its transaction-core block.
func transformInvestCore(core invTranCore, currency string) (models.Transaction, error) {
	if core.FitID == "" {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "INVTRAN/FITID",
			Value:  core.Memo,
			Err:    fmt.Errorf("investment transaction has no institution id"),
		}
	}
	dateSettled, err := dateutils.ParseOFXDate(core.DtSettle)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "DTSETTLE",
			Value:  core.DtSettle,
			Err:    err,
		}
	}
	return models.Transaction{
		FitID:      core.FitID,
		DatePosted: dateSettled,
		Memo:       core.Memo,
		Currency:   currency,
	}, nil
}

func optionalDecimal(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: parserName,
			Field:  field,
			Value:  value,
			Err:    err,
		}
	}
	return &parsed, nil
}
