package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) Mounted(el *Element)      { r.events = append(r.events, "mounted "+el.String()) }
func (r *recordingObserver) Removed(el *Element)      { r.events = append(r.events, "removed "+el.String()) }
func (r *recordingObserver) ClassChanged(el *Element) { r.events = append(r.events, "class "+el.String()) }
func (r *recordingObserver) StyleChanged(el *Element) { r.events = append(r.events, "style "+el.String()) }

func TestClassList(t *testing.T) {
	doc := New(nil)
	el := doc.CreateElement("div")

	el.ClassList().Add("notification", "info", "info", " ")
	assert.Equal(t, "notification info", el.ClassList().String())
	assert.True(t, el.ClassList().Contains("info"))

	assert.True(t, el.ClassList().Toggle("visible"))
	assert.False(t, el.ClassList().Toggle("visible"))

	el.ClassList().Remove("info", "missing")
	assert.Equal(t, []string{"notification"}, el.ClassList().Values())
}

func TestAppendAndRemove_Observed(t *testing.T) {
	doc := New(nil)
	obs := &recordingObserver{}
	handle := doc.AddObserver(obs)

	el := doc.CreateElement("div")
	el.ClassList().Add("detached")
	el.SetStyle("bottom", "0px")
	assert.Empty(t, obs.events, "detached changes are not observed")

	doc.Body().AppendChild(el)
	assert.True(t, el.IsConnected())
	el.ClassList().Add("visible")
	el.SetStyle("bottom", "10px")
	el.SetStyle("bottom", "10px")
	el.Remove()
	assert.False(t, el.IsConnected())

	assert.Equal(t, []string{
		"mounted <div.detached>",
		"class <div.detached.visible>",
		"style <div.detached.visible>",
		"removed <div.detached.visible>",
	}, obs.events)

	handle.Remove()
	handle.Remove()
	doc.Body().AppendChild(el)
	assert.Len(t, obs.events, 4)
}

func TestGetElementsByClassName_TreeOrder(t *testing.T) {
	doc := New(nil)
	var want []*Element
	for range 3 {
		el := doc.CreateElement("div")
		el.ClassList().Add("notification")
		doc.Body().AppendChild(el)
		want = append(want, el)
	}
	other := doc.CreateElement("div")
	doc.Body().AppendChild(other)

	got := doc.GetElementsByClassName("notification")
	require.Len(t, got, 3)
	assert.Equal(t, want, got)

	want[1].Remove()
	assert.Equal(t, []*Element{want[0], want[2]}, doc.GetElementsByClassName("notification"))
}

func TestTextContent_IsVerbatim(t *testing.T) {
	doc := New(nil)
	span := doc.CreateElement("span")
	span.AppendText("<b>bold</b> & ")
	span.AppendText("more")

	assert.Equal(t, "<b>bold</b> & more", span.TextContent())
	for _, c := range span.Children() {
		assert.True(t, c.IsText())
	}
}

func TestListeners(t *testing.T) {
	doc := New(nil)
	el := doc.CreateElement("button")

	var calls []string
	always := el.AddEventListener(EventClick, func(ev Event) {
		assert.Same(t, el, ev.Target)
		calls = append(calls, "always")
	})
	el.AddEventListenerOnce(EventClick, func(Event) { calls = append(calls, "once") })
	el.AddEventListener(EventPointerEnter, func(Event) { calls = append(calls, "enter") })

	el.DispatchEvent(Event{Type: EventClick})
	el.DispatchEvent(Event{Type: EventClick})
	assert.Equal(t, []string{"always", "once", "always"}, calls)
	assert.Equal(t, 1, el.ListenerCount(EventClick))

	always.Remove()
	always.Remove()
	el.DispatchEvent(Event{Type: EventClick})
	assert.Len(t, calls, 3)
	assert.Equal(t, 0, el.ListenerCount(EventClick))
}

func TestListeners_RemovedDuringDispatchAreSkipped(t *testing.T) {
	doc := New(nil)
	var second Listener
	called := false
	doc.AddEventListener("ping", func(Event) { second.Remove() })
	second = doc.AddEventListener("ping", func(Event) { called = true })

	doc.DispatchEvent(Event{Type: "ping"})
	assert.False(t, called)
}

func TestPixels(t *testing.T) {
	doc := New(nil)
	el := doc.CreateElement("div")
	el.SetPixels("bottom", 62.5)
	assert.Equal(t, "63px", el.Style("bottom"))

	v, ok := el.Pixels("bottom")
	require.True(t, ok)
	assert.Equal(t, 63.0, v)

	_, ok = ParsePixels("auto")
	assert.False(t, ok)
	el.SetStyle("bottom", "")
	assert.Empty(t, el.Styles())
}

func TestTextMeasurer(t *testing.T) {
	m := TextMeasurer{Padding: 10, LineHeight: 20, CharsPerLine: 10, ButtonRow: 30}
	doc := New(m)

	el := doc.CreateElement("div")
	msg := doc.CreateElement("span")
	msg.AppendText("short")
	el.AppendChild(msg)
	assert.Equal(t, 40.0, doc.Measure(el))

	// "" and "this line wraps over two" wrap to 1 + 3 lines.
	msg.AppendText("\nthis line wraps over two")
	assert.Equal(t, 120.0, doc.Measure(el))

	btn := doc.CreateElement("button")
	btn.AppendText("a very long button label that should not count")
	el.AppendChild(btn)
	assert.Equal(t, 150.0, doc.Measure(el))
}

func TestRenderHTML_EscapesText(t *testing.T) {
	doc := New(nil)
	el := doc.CreateElement("div")
	el.ClassList().Add("notification", "error")
	el.SetData("notification-id", "01J")
	el.SetStyle("bottom", "0px")
	span := doc.CreateElement("span")
	span.AppendText(`<script>alert("x")</script>`)
	el.AppendChild(span)

	out, err := HTML(el)
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="notification error" data-notification-id="01J" style="bottom: 0px"><span>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</span></div>`,
		out)
}
