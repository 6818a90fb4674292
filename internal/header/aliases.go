package header

// Aliases lists the header spellings seen in bulletins for each extracted
// field. Matching is case and whitespace insensitive.
type Aliases struct {
	Location        []string `yaml:"location"`
	Movement        []string `yaml:"movement"`
	Windspeed       []string `yaml:"windspeed"`
	UpdatedDatetime []string `yaml:"updated_datetime"`
	Signals         []string `yaml:"tcws"`
	Rainfall        []string `yaml:"rainfall"`
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() Aliases {
	return Aliases{
		Location:        []string{"Location of Center", "Location", "Centre at", "Estimated center"},
		Movement:        []string{"Present Movement", "Movement", "Direction and speed"},
		Windspeed:       []string{"Intensity", "Maximum sustained winds", "Winds", "MSW", "Sustained winds"},
		UpdatedDatetime: []string{"Issued at", "Issued:", "Issued as of", "Date/Time", "Date and Time", "Issued"},
		Signals:         []string{"TROPICAL CYCLONE WIND SIGNALS", "TCWS", "WIND SIGNALS"},
		Rainfall:        []string{"Heavy Rainfall Outlook", "HEAVY RAINFALL", "Rainfall Warning", "Rainfall"},
	}
}

// Merge returns a copy of a where every non-empty list in o replaces the
// corresponding list.
func (a Aliases) Merge(o Aliases) Aliases {
	pick := func(base, over []string) []string {
		if len(over) > 0 {
			return over
		}
		return base
	}
	return Aliases{
		Location:        pick(a.Location, o.Location),
		Movement:        pick(a.Movement, o.Movement),
		Windspeed:       pick(a.Windspeed, o.Windspeed),
		UpdatedDatetime: pick(a.UpdatedDatetime, o.UpdatedDatetime),
		Signals:         pick(a.Signals, o.Signals),
		Rainfall:        pick(a.Rainfall, o.Rainfall),
	}
}
