package report

import (
	"fmt"
	"strings"
)

// Builders accumulate structured line records first and render text as a
// separate pass, so the arithmetic and the layout stay independently
// testable.

type lineKind int

const (
	kindText lineKind = iota
	kindItem
	kindAmount
	kindDivider
	kindThin
)

type line struct {
	kind     lineKind
	text     string  // header/bullet text, item label, or amount label
	index    int     // 1-based position for item lines
	note     string  // quantity annotation ("2 x 5.00 = ", "1/2 x 20.00 = ")
	amount   float64 // already rounded by the producer
	negative bool    // render the amount with a leading minus (discounts)
}

type builder struct {
	lines []line
}

func (b *builder) text(s string) {
	b.lines = append(b.lines, line{kind: kindText, text: s})
}

func (b *builder) item(index int, itemLabel, note string, amount float64) {
	b.lines = append(b.lines, line{kind: kindItem, index: index, text: itemLabel, note: note, amount: amount})
}

func (b *builder) amount(amountLabel string, v float64) {
	b.lines = append(b.lines, line{kind: kindAmount, text: amountLabel, amount: v})
}

func (b *builder) negAmount(amountLabel string, v float64) {
	b.lines = append(b.lines, line{kind: kindAmount, text: amountLabel, amount: v, negative: true})
}

func (b *builder) divider() {
	b.lines = append(b.lines, line{kind: kindDivider})
}

func (b *builder) thin() {
	b.lines = append(b.lines, line{kind: kindThin})
}

func (b *builder) render() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch l.kind {
		case kindText:
			sb.WriteString(l.text)
		case kindItem:
			fmt.Fprintf(&sb, "%d. %s = %s%s", l.index, l.text, l.note, Amount(l.amount))
		case kindAmount:
			sign := ""
			if l.negative {
				sign = "-"
			}
			fmt.Fprintf(&sb, "%s = %s%s", l.text, sign, Amount(l.amount))
		case kindDivider:
			sb.WriteString(Divider)
		case kindThin:
			sb.WriteString(ThinDivider)
		}
	}
	return sb.String()
}
