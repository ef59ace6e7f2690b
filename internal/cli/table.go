package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/stats"
	"github.com/xolan/mood/internal/storage"
)

// DescriptionWidth bounds the description column of the history table
const DescriptionWidth = 48

var bold = color.New(color.Bold)

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

// HistoryTable lists entries in the order given, one row each.
// The ID column shows short from ShortIDs, or the full id when it has no entry there.
func HistoryTable(entries []entry.MoodEntry, short map[string]string, loc *time.Location) *uitable.Table {
	tbl := newTable()
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DATE"), bold.Sprint("MOOD"), bold.Sprint("DESCRIPTION"), bold.Sprint("INSIGHT"))
	for _, e := range entries {
		insight := "pending"
		if e.HasInsight() {
			insight = "yes"
		}
		id, ok := short[e.ID]
		if !ok {
			id = e.ID
		}
		tbl.AddRow(
			id,
			FormatDate(e.Date, loc),
			ColorMood(e.Scale),
			Truncate(e.Description, DescriptionWidth),
			insight,
		)
	}
	return tbl
}

// TrendTable draws one bar per entry, in the order given.
func TrendTable(points []entry.MoodEntry, loc *time.Location) *uitable.Table {
	tbl := newTable()
	for _, e := range points {
		tbl.AddRow(
			FormatDate(e.Date, loc),
			ScaleColor(e.Scale).Sprint(Bar(e.Scale)),
			FormatScale(e.Scale),
		)
	}
	return tbl
}

// DailyTable draws the average scale of each day.
func DailyTable(days []stats.DayAverage) *uitable.Table {
	tbl := newTable()
	for _, d := range days {
		scale := int(d.Average + 0.5)
		tbl.AddRow(
			d.Day.Format("Mon Jan 2"),
			ScaleColor(scale).Sprint(Bar(scale)),
			fmt.Sprintf("%.1f", d.Average),
			fmt.Sprintf("%d %s", d.Count, Pluralize("entry", d.Count)),
		)
	}
	tbl.RightAlign(2)
	return tbl
}

// SummaryTable shows the aggregate numbers of s and its label distribution.
func SummaryTable(s stats.Summary) *uitable.Table {
	tbl := newTable()
	tbl.AddRow(bold.Sprint("Entries:"), strconv.Itoa(s.Count))
	if s.Count == 0 {
		return tbl
	}
	avg := int(s.Average + 0.5)
	tbl.AddRow(bold.Sprint("Average:"), fmt.Sprintf("%.1f (%s)", s.Average, entry.Label(avg)))
	tbl.AddRow(bold.Sprint("Lowest:"), ColorMood(s.Min))
	tbl.AddRow(bold.Sprint("Highest:"), ColorMood(s.Max))
	tbl.AddRow(bold.Sprint("With insight:"), fmt.Sprintf("%d/%d", s.WithInsight, s.Count))
	for _, label := range entry.Labels {
		if n := s.ByLabel[label]; n > 0 {
			tbl.AddRow(label+":", strconv.Itoa(n))
		}
	}
	return tbl
}

// HealthTable reports the state of the stored payload.
func HealthTable(h storage.Health, location string) *uitable.Table {
	status := color.GreenString("healthy")
	switch {
	case h.Corrupt:
		status = color.RedString("corrupted")
	case !h.Present:
		status = "empty"
	}

	tbl := newTable()
	tbl.AddRow(bold.Sprint("Storage:"), location)
	tbl.AddRow(bold.Sprint("Key:"), h.Key)
	tbl.AddRow(bold.Sprint("Status:"), status)
	tbl.AddRow(bold.Sprint("Payload:"), fmt.Sprintf("%d bytes", h.Bytes))
	tbl.AddRow(bold.Sprint("Entries:"), strconv.Itoa(h.Entries))
	tbl.AddRow(bold.Sprint("With insight:"), strconv.Itoa(h.WithInsight))
	tbl.AddRow(bold.Sprint("Backups:"), strconv.Itoa(h.Backups))
	if h.Corrupt {
		tbl.AddRow(bold.Sprint("Error:"), h.Error)
	}
	return tbl
}

// BackupTable lists backup slots, most recent first.
func BackupTable(backups []storage.BackupInfo) *uitable.Table {
	tbl := newTable()
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("SLOT"), bold.Sprint("SIZE"))
	for _, b := range backups {
		tbl.AddRow(strconv.Itoa(b.Number), b.Key, fmt.Sprintf("%d bytes", b.Bytes))
	}
	tbl.RightAlign(0)
	return tbl
}

// EntryTable shows every field of one entry.
func EntryTable(e entry.MoodEntry, loc *time.Location) *uitable.Table {
	insight := color.YellowString("(pending)")
	if e.HasInsight() {
		insight = e.Insight
	}

	tbl := newTable()
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	tbl.AddRow(bold.Sprint("ID:"), e.ID)
	tbl.AddRow(bold.Sprint("Date:"), FormatDate(e.Date, loc))
	tbl.AddRow(bold.Sprint("Mood:"), ColorMood(e.Scale))
	tbl.AddRow(bold.Sprint("Description:"), e.Description)
	tbl.AddRow(bold.Sprint("Insight:"), insight)
	return tbl
}
