// README: Pure HTML rendering of FinalData; no network, no mutation.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"wayfarer/internal/modules/response"
)

// EscapeHTML neutralises markup in interpolated text.
func EscapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// Render maps FinalData to chat-bubble markup. The second return is false when
// no recognized shape matched; callers then degrade to RenderText or
// RenderJSON.
func Render(data response.FinalData) (string, bool) {
	if data.Kind != response.KindStructured {
		return "", false
	}

	if rich := renderRichPlan(data.Object); rich != "" {
		return rich, true
	}

	// Legacy flat itinerary shape kept for older planner deployments; it runs
	// whenever the rich sections produced nothing and itinerary holds a list.
	if legacy, ok := renderLegacyItinerary(data.Object); ok {
		return legacy, true
	}

	return "", false
}

// RenderText is the plain-text fallback: escaped, newlines become breaks.
func RenderText(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}

// RenderJSON is the last-resort fallback for shapes nothing recognizes.
func RenderJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "<pre>" + EscapeHTML(fmt.Sprint(v)) + "</pre>"
	}
	return "<pre>" + EscapeHTML(string(b)) + "</pre>"
}

// renderRichPlan renders the full trip-plan shape section by section.
// Every field is defensively defaulted; sections render only when non-empty.
func renderRichPlan(data map[string]any) string {
	var b strings.Builder

	days, hasDays := seq(data, "days")
	if len(days) > 0 {
		b.WriteString(`<div class="trip-section-title">Itinerary by Day</div>`)
		for i, d := range days {
			writeDayCard(&b, obj(d), i)
		}
	}

	if itinerary, _ := seq(data, "itinerary"); len(itinerary) > 0 && !hasDays {
		b.WriteString(`<div class="trip-section-title">Plan</div>`)
		for _, s := range itinerary {
			writeFlatStep(&b, obj(s))
		}
	}

	if flights, _ := seq(data, "flights"); len(flights) > 0 {
		b.WriteString(`<div class="trip-section-title">Suggested Flights</div><div class="trip-card-list">`)
		for _, f := range flights {
			writeFlightCard(&b, obj(f))
		}
		b.WriteString(`</div>`)
	}

	if hotels, _ := seq(data, "hotels"); len(hotels) > 0 {
		b.WriteString(`<div class="trip-section-title">Where to Stay</div><div class="trip-card-list">`)
		for _, h := range hotels {
			writeHotelCard(&b, obj(h))
		}
		b.WriteString(`</div>`)
	}

	if transport, _ := seq(data, "transport"); len(transport) > 0 {
		b.WriteString(`<div class="trip-section-title">Local Transport</div><div class="trip-card-list">`)
		for _, t := range transport {
			writeTransportCard(&b, obj(t))
		}
		b.WriteString(`</div>`)
	}

	writeBudget(&b, data)

	weather := obj(data["weather"])
	if weather != nil {
		writeWeather(&b, weather)
	}

	// Standalone time-of-day line only when no weather section rendered.
	if tod := str(data["time_of_day"]); tod != "" && weather == nil {
		b.WriteString(`<div style="margin-top:6px;font-size:12px;"><strong>Time of Day:</strong> ` +
			EscapeHTML(tod) + `</div>`)
	}

	return b.String()
}

func writeDayCard(b *strings.Builder, day map[string]any, index int) {
	if day == nil {
		return
	}
	label := str(day["label"])
	if label == "" {
		n := index + 1
		if v, ok := num(day["day"]); ok {
			n = int(v)
		}
		label = fmt.Sprintf("Day %d", n)
	}
	b.WriteString(`<div class="day-card"><div class="day-card-header"><span>` +
		EscapeHTML(label) + `</span><span>` + EscapeHTML(str(day["date"])) + `</span></div>`)
	if summary := str(day["summary"]); summary != "" {
		b.WriteString(`<div style="font-size:12px; margin-bottom:4px;">` + EscapeHTML(summary) + `</div>`)
	}
	b.WriteString(`<div class="day-card-activities">`)
	acts, _ := day["activities"].([]any)
	for _, a := range acts {
		writeActivity(b, obj(a))
	}
	b.WriteString(`</div></div>`)
}

func writeActivity(b *strings.Builder, act map[string]any) {
	if act == nil {
		return
	}
	time := first(act, "time_of_day", "time")
	place := first(act, "place", "title")
	reason := first(act, "reason", "description")
	cost := str(act["estimated_cost"])

	b.WriteString(`<div class="day-activity"><div class="day-activity-time">` +
		EscapeHTML(time) + `</div><div class="day-activity-main"><strong>` +
		EscapeHTML(place) + `</strong>`)
	if cost != "" {
		b.WriteString(` <span style="font-size:11px; color:#b0b0b0;">(` + EscapeHTML(cost) + `)</span>`)
	}
	if reason != "" {
		b.WriteString(`<div style="font-size:12px;">` + EscapeHTML(reason) + `</div>`)
	}
	b.WriteString(`</div></div>`)
}

func writeFlatStep(b *strings.Builder, step map[string]any) {
	if step == nil {
		return
	}
	head := "Spot"
	if v, ok := num(step["step"]); ok {
		head = fmt.Sprintf("Step %d", int(v))
	}
	b.WriteString(`<div style="margin-bottom: 10px;"><strong>` + EscapeHTML(head) +
		`:</strong> ` + EscapeHTML(str(step["place"])))
	if cost := str(step["estimated_cost"]); cost != "" {
		b.WriteString(` (<span>` + EscapeHTML(cost) + `</span>)`)
	}
	b.WriteString(`<br><em>Reason:</em> ` + EscapeHTML(str(step["reason"])) + `</div>`)
}

func writeFlightCard(b *strings.Builder, f map[string]any) {
	if f == nil {
		return
	}
	airline := str(f["airline"])
	if airline == "" {
		airline = "Flight"
	}
	b.WriteString(`<div class="trip-card"><div class="trip-card-header"><span>` +
		EscapeHTML(airline) + `</span><span>` + EscapeHTML(str(f["price"])) + `</span></div>` +
		`<div class="trip-card-sub">` + EscapeHTML(str(f["from"])) + ` &rarr; ` + EscapeHTML(str(f["to"])) +
		`<br>` + EscapeHTML(str(f["depart_time"])) + ` &ndash; ` + EscapeHTML(str(f["arrive_time"])) + `</div>`)
	writeBookingLink(b, f)
	b.WriteString(`</div>`)
}

func writeHotelCard(b *strings.Builder, h map[string]any) {
	if h == nil {
		return
	}
	name := str(h["name"])
	if name == "" {
		name = "Stay"
	}
	price := first(h, "total_price", "price_per_night")
	b.WriteString(`<div class="trip-card"><div class="trip-card-header"><span>` +
		EscapeHTML(name) + `</span><span>` + EscapeHTML(price) + `</span></div>` +
		`<div class="trip-card-sub">` + EscapeHTML(str(h["address"])) + `<br>`)
	if rating := stringify(h["rating"]); rating != "" {
		b.WriteString(`Rating: ` + EscapeHTML(rating) + ` | `)
	}
	if nights := stringify(h["nights"]); nights != "" {
		b.WriteString(EscapeHTML(nights) + ` nights`)
	}
	b.WriteString(`</div>`)
	writeBookingLink(b, h)
	b.WriteString(`</div>`)
}

func writeTransportCard(b *strings.Builder, t map[string]any) {
	if t == nil {
		return
	}
	kind := str(t["type"])
	if kind == "" {
		kind = "Transport"
	}
	b.WriteString(`<div class="trip-card"><div class="trip-card-header"><span>` +
		EscapeHTML(kind) + `</span><span>` + EscapeHTML(str(t["price"])) + `</span></div>` +
		`<div class="trip-card-sub">` + EscapeHTML(str(t["from"])) + ` &rarr; ` + EscapeHTML(str(t["to"])) +
		`<br>` + EscapeHTML(str(t["depart_time"])))
	if dur := str(t["duration"]); dur != "" {
		b.WriteString(` &bull; ` + EscapeHTML(dur))
	}
	b.WriteString(`</div></div>`)
}

func writeBookingLink(b *strings.Builder, m map[string]any) {
	if u := str(m["booking_url"]); u != "" {
		b.WriteString(`<div class="trip-card-link"><a href="` + EscapeHTML(u) +
			`" target="_blank" rel="noopener noreferrer">Book / View on site</a></div>`)
	}
}

// writeBudget prefers an explicit budget object with total+breakdown, then
// falls back to a flat total-cost field.
func writeBudget(b *strings.Builder, data map[string]any) {
	if budget := obj(data["budget"]); budget != nil {
		b.WriteString(`<div class="trip-section-title">Budget Overview</div><div class="budget-summary">`)
		total := stringify(budget["total"])
		if total == "" {
			total = stringify(data["total_estimated_cost"])
		}
		if total != "" {
			b.WriteString(`<div><strong>Total Estimated Cost:</strong> ` + EscapeHTML(total) + `</div>`)
		}
		if breakdown := obj(budget["breakdown"]); breakdown != nil {
			for _, k := range sortedKeys(breakdown) {
				b.WriteString(`<div>` + EscapeHTML(k) + `: ` + EscapeHTML(stringify(breakdown[k])) + `</div>`)
			}
		}
		b.WriteString(`</div>`)
		return
	}
	if total := stringify(data["total_estimated_cost"]); total != "" {
		b.WriteString(`<div class="budget-summary"><strong>Total Estimated Cost:</strong> ` +
			EscapeHTML(total) + `</div>`)
	}
}

func writeWeather(b *strings.Builder, w map[string]any) {
	b.WriteString(`<div class="trip-section-title">Weather &amp; Activity Suggestions</div><div class="weather-summary">`)
	if summary := str(w["summary"]); summary != "" {
		b.WriteString(`<div>` + EscapeHTML(summary) + `</div>`)
	}
	daily, _ := w["daily"].([]any)
	for _, d := range daily {
		day := obj(d)
		if day == nil {
			continue
		}
		b.WriteString(`<div style="margin-top:4px;"><strong>` + EscapeHTML(str(day["date"])) +
			`</strong>: ` + EscapeHTML(str(day["condition"])))
		tmin, okMin := num(day["temp_min"])
		tmax, okMax := num(day["temp_max"])
		if okMin && okMax {
			b.WriteString(fmt.Sprintf(` (%s&ndash;%s&deg;)`, formatNum(tmin), formatNum(tmax)))
		}
		if acts, _ := day["suggested_activities"].([]any); len(acts) > 0 {
			names := make([]string, 0, len(acts))
			for _, a := range acts {
				names = append(names, stringify(a))
			}
			b.WriteString(`<br><span style="font-size:12px;">Try: ` +
				EscapeHTML(strings.Join(names, ", ")) + `</span>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

// renderLegacyItinerary handles the oldest reply shape: a bare itinerary list
// with flat totals. An empty list still renders the totals footer.
func renderLegacyItinerary(data map[string]any) (string, bool) {
	steps, ok := data["itinerary"].([]any)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, s := range steps {
		step := obj(s)
		if step == nil {
			continue
		}
		head := ""
		if v, ok := num(step["step"]); ok {
			head = fmt.Sprintf("%d", int(v))
		}
		b.WriteString(`<div style="margin-bottom: 10px;"><strong>Step ` + EscapeHTML(head) +
			`:</strong> ` + EscapeHTML(str(step["place"])))
		if cost := str(step["estimated_cost"]); cost != "" {
			b.WriteString(` (` + EscapeHTML(cost) + `)`)
		}
		b.WriteString(`<br><em>Reason:</em> ` + EscapeHTML(str(step["reason"])) + `</div>`)
	}
	b.WriteString(`<div><strong>Total Estimated Cost:</strong> ` +
		EscapeHTML(stringify(data["total_estimated_cost"])) + `<br><strong>Time of Day:</strong> ` +
		EscapeHTML(str(data["time_of_day"])) + `</div>`)
	return b.String(), true
}
