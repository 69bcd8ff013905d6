package qfxparser

import (
	"fmt"

	"fjacquet/qfx-ledger/internal/dateutils"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
)

// buildSecurityTable builds the document-scoped security resolver table,
// mapping security identifier to Security. The build is total: a malformed
// entry is a terminal failure, because a missing ticker would silently
// mis-attribute a holding.
func buildSecurityTable(list *secList) (map[string]models.Security, error) {
	securities := make(map[string]models.Security)
	if list == nil {
		return securities, nil
	}

	for _, fund := range list.MutualFunds {
		security, err := buildSecurity(fund.SecInfo, fund.MFType)
		if err != nil {
			return nil, err
		}
		securities[security.SecID] = security
	}
	for _, stock := range list.Stocks {
		security, err := buildSecurity(stock.SecInfo, stock.StockType)
		if err != nil {
			return nil, err
		}
		securities[security.SecID] = security
	}

	tickers := make([]string, 0, len(securities))
	for _, security := range securities {
		tickers = append(tickers, security.Ticker)
	}
	log.Debug("Built security table", logging.Field{Key: logging.FieldCount, Value: len(securities)},
		logging.Field{Key: logging.FieldTicker, Value: tickers})

	return securities, nil
}

func buildSecurity(info secInfo, instrumentType string) (models.Security, error) {
	if info.UniqueID == "" {
		return models.Security{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "SECID/UNIQUEID",
			Value:  info.Name,
			Err:    fmt.Errorf("security entry has no unique id"),
		}
	}
	if info.Ticker == "" {
		return models.Security{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "TICKER",
			Value:  info.UniqueID,
			Err:    fmt.Errorf("security entry has no ticker"),
		}
	}

	unitPrice := decimal.Zero
	if info.UnitPrice != "" {
		parsed, err := decimal.NewFromString(info.UnitPrice)
		if err != nil {
			return models.Security{}, &parsererror.ParseError{
				Parser: parserName,
				Field:  "UNITPRICE",
				Value:  info.UnitPrice,
				Err:    err,
			}
		}
		unitPrice = parsed
	}

	security := models.Security{
		Ticker:    info.Ticker,
		SecID:     info.UniqueID,
		Name:      info.Name,
		Type:      instrumentType,
		UnitPrice: unitPrice,
	}

	if info.DtAsOf != "" {
		asOf, err := dateutils.ParseOFXDate(info.DtAsOf)
		if err != nil {
			return models.Security{}, &parsererror.ParseError{
				Parser: parserName,
				Field:  "DTASOF",
				Value:  info.DtAsOf,
				Err:    err,
			}
		}
		security.AsOf = asOf
	}

	return security, nil
}

// resolveTicker looks up a security identifier in the resolver table.
// A miss is a hard failure, never a degraded value.
func resolveTicker(securities map[string]models.Security, secID string) (string, error) {
	security, ok := securities[secID]
	if !ok {
		return "", &parsererror.UnresolvedSecurityError{SecurityID: secID}
	}
	return security.Ticker, nil
}
