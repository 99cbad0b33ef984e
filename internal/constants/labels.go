package constants

// MonthNames is indexed by month-1.
var MonthNames = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

const (
	EntriesHeader     = "Einträge"
	EntriesHeaderFor  = "Einträge für: %s"
	NoEntriesLabel    = "Keine Einträge"
	OneEntryLabel     = "1 Eintrag"
	ManyEntriesLabel  = "%d Einträge"
	SearchPlaceholder = "Tag suchen..."
	EditedMarker      = "(bearbeitet)"
	NoDaysHint        = "Keine Tage. 'n' legt einen an."
	NoDaySelectedHint = "Kein Tag ausgewählt."
	NoEntriesHint     = "Keine Einträge. 'a' fügt einen hinzu."
)
