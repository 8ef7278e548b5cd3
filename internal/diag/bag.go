package diag

import (
	"cmp"
	"slices"

	"trueup/internal/source"
)

// Bag is a bounded accumulator of diagnostics. The cap comes from
// --max-diagnostics: once it is reached Add turns into a no-op.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{items: make([]Diagnostic, 0, max), max: max}
}

// Add запоминает диагностику. Возвращает false, когда лимит выбран
// и диагностика отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items отдаёт внутренний срез без копии; изменять его нельзя.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity >= SevError
	})
}

func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity >= SevWarning
	})
}

// Merge присоединяет содержимое other. Лимит растёт, если иначе элементы
// не поместились бы.
func (b *Bag) Merge(other *Bag) {
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort упорядочивает: файл, начало, конец, severity (по убыванию), код.
// Внутри каждого файла это даёт блоки в порядке возрастания оффсетов.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if c := cmp.Compare(x.Primary.File, y.Primary.File); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Primary.Start, y.Primary.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Primary.End, y.Primary.End); c != 0 {
			return c
		}
		if x.Severity != y.Severity {
			// Error раньше Warning
			return cmp.Compare(y.Severity, x.Severity)
		}
		return cmp.Compare(x.Code, y.Code)
	})
}

// Dedup схлопывает повторы с одинаковым кодом и спаном; остаётся первый.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := key{code: d.Code, span: d.Primary}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
