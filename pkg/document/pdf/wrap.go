package pdf

import (
	"github.com/Samayeeta/indicure-ey/pkg/document/flow"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

// fragment is a run of encoded text drawn with one font and link.
type fragment struct {
	text  string
	bold  bool
	link  string
	width float64
}

type line struct {
	frags []fragment
	width float64
}

func (l *layout) measure(encoded string, st style.Style, bold bool) float64 {
	l.setFont(st, bold, false)
	return l.doc.GetStringWidth(encoded)
}

// fit returns the longest prefix length of encoded that fits in avail.
// Encoded text is single-byte, so byte offsets are glyph offsets.
func (l *layout) fit(encoded string, st style.Style, bold bool, avail float64) int {
	l.setFont(st, bold, false)
	_, size := l.doc.GetFontSize()
	sym := 0
	for i := 0; i < len(encoded); i++ {
		sym += l.doc.GetStringSymbolWidth(encoded[i : i+1])
		if float64(sym)*size/1000 > avail {
			return i
		}
	}
	return len(encoded)
}

// wrapper accumulates fragments into lines no wider than width.
type wrapper struct {
	l     *layout
	st    style.Style
	width float64
	lines []line
	cur   line
	// space is set when the next word follows whitespace.
	space bool
}

func (w *wrapper) flush() {
	w.lines = append(w.lines, w.cur)
	w.cur = line{}
	w.space = false
}

func (w *wrapper) appendText(text string, bold bool, link string, withSpace bool) {
	tw := w.l.measure(text, w.st, bold)
	if withSpace {
		text = " " + text
		tw = w.l.measure(" ", w.st, bold) + tw
	}
	n := len(w.cur.frags)
	if n > 0 && w.cur.frags[n-1].bold == bold && w.cur.frags[n-1].link == link {
		w.cur.frags[n-1].text += text
		w.cur.frags[n-1].width += tw
	} else {
		w.cur.frags = append(w.cur.frags, fragment{text: text, bold: bold, link: link, width: tw})
	}
	w.cur.width += tw
}

// word places one whitespace-free token. Word wrap moves a token that does
// not fit to the next line and only splits tokens wider than a whole line;
// char wrap fills the current line before splitting.
func (w *wrapper) word(tok string, bold bool, link string) {
	for tok != "" {
		withSpace := w.space && len(w.cur.frags) > 0
		var sw float64
		if withSpace {
			sw = w.l.measure(" ", w.st, bold)
		}
		avail := w.width - w.cur.width - sw
		tw := w.l.measure(tok, w.st, bold)
		if w.cur.width+(sw+tw) <= w.width {
			w.appendText(tok, bold, link, withSpace)
			w.space = false
			return
		}

		if len(w.cur.frags) > 0 && (w.st.Wrap == style.WrapWord || w.l.fit(tok, w.st, bold, avail) == 0) {
			w.flush()
			continue
		}

		if len(w.cur.frags) == 0 {
			withSpace = false
			avail = w.width
		}
		n := w.l.fit(tok, w.st, bold, avail)
		if n == 0 {
			n = 1
		}
		w.appendText(tok[:n], bold, link, withSpace)
		tok = tok[n:]
		w.flush()
	}
}

// verbatim places text without touching its whitespace. Text that overflows
// the line continues on the next one.
func (w *wrapper) verbatim(text string, bold bool, link string) {
	for text != "" {
		n := w.l.fit(text, w.st, bold, w.width-w.cur.width)
		if n == len(text) {
			w.appendText(text, bold, link, false)
			break
		}
		if n == 0 && len(w.cur.frags) == 0 {
			n = 1
		}
		if n > 0 {
			w.appendText(text[:n], bold, link, false)
		}
		text = text[n:]
		w.flush()
	}
	w.space = false
}

// wrap breaks spans into lines of at most width points. Whitespace runs
// collapse to one space except inside Preserve spans; flow.LineBreak spans
// force a new line.
func (l *layout) wrap(spans []flow.Span, st style.Style, width float64) []line {
	w := &wrapper{l: l, st: st, width: width}
	for _, sp := range spans {
		if sp.Break {
			w.flush()
			continue
		}
		text := l.encode(sp.Text)
		if text == "" {
			continue
		}
		if sp.Preserve {
			w.verbatim(text, sp.Bold, sp.Link)
			continue
		}
		if isSpace(text[0]) {
			w.space = true
		}
		for i, tok := range fields(text) {
			if i > 0 {
				w.space = true
			}
			w.word(tok, sp.Bold, sp.Link)
		}
		if isSpace(text[len(text)-1]) {
			w.space = true
		}
	}
	if len(w.cur.frags) > 0 {
		w.flush()
	}
	return w.lines
}

// fields splits encoded text on ASCII whitespace. strings.Fields would decode
// cp1252 bytes as UTF-8.
func fields(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t' || b == '\v' || b == '\f'
}
