// Package ofx reads OFX/QFX bank statements into movement candidates for
// bulk import. It only extracts what the import operation needs: dates,
// exact amounts, and descriptive text.
package ofx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)(</SEVERITY>)?`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes formatting quirks banks ship in real OFX files:
// leading blank lines, mixed-case SEVERITY values, and SGML-style tags
// missing their closing bracket.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagPattern.ReplaceAllString(content, "$1>")
}

// ReadCandidates parses an OFX/QFX statement and returns one movement
// candidate per transaction, with amounts in minor units at the given
// precision. The candidates carry no ids or account references; the import
// operation assigns those.
func ReadCandidates(r io.Reader, precision int) ([]model.Movement, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	var candidates []model.Movement
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				candidates = append(candidates, convert(tx, precision))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				candidates = append(candidates, convert(tx, precision))
			}
		}
	}
	return candidates, nil
}

// convert maps one OFX transaction to a movement candidate. The OFX amount
// is a rational number; it is scaled to minor units through exact decimal
// arithmetic, never through float64.
func convert(tx ofxgo.Transaction, precision int) model.Movement {
	amount := decimal.NewFromBigRat(&tx.TrnAmt.Rat, int32(precision)).
		Shift(int32(precision)).
		IntPart()
	kind := model.MovementIncome
	if amount < 0 {
		kind = model.MovementExpense
	}
	m := model.Movement{
		Kind:        kind,
		Date:        model.DateOf(tx.DtPosted.Time),
		Description: cleanDescription(string(tx.Name)),
		Notes:       string(tx.Memo),
		Amount:      amount,
		Source:      model.SourceImport,
	}
	if tx.Payee != nil {
		m.Payee = string(tx.Payee.Name)
	}
	return m
}

// descriptionPrefixes is processor noise banks prepend to the real merchant.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

func cleanDescription(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}
	// Strip a leading "MM/DD " date stamp. All four positions must be
	// digits; "AB/CD STORE" is a merchant name, not a date.
	if len(name) > 6 && name[2] == '/' && name[5] == ' ' &&
		isDigit(name[0]) && isDigit(name[1]) && isDigit(name[3]) && isDigit(name[4]) {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
