package arrivals

// defaultColor is the neutral grey used for lines without a branded color.
const defaultColor = "#6D6E71"

// terminals maps line and direction to the usual terminal shown as the
// destination when the feed carries no headsign. Service patterns shift
// overnight and on weekends; these are the daytime terminals riders know.
var terminals = map[string]string{
	"1|N": "Van Cortlandt Park-242 St",
	"1|S": "South Ferry",
	"2|N": "Wakefield-241 St",
	"2|S": "Flatbush Av-Brooklyn College",
	"3|N": "Harlem-148 St",
	"3|S": "New Lots Av",
	"4|N": "Woodlawn",
	"4|S": "Crown Hts-Utica Av",
	"5|N": "Eastchester-Dyre Av",
	"5|S": "Flatbush Av-Brooklyn College",
	"6|N": "Pelham Bay Park",
	"6|S": "Brooklyn Bridge-City Hall",
	"7|N": "Flushing-Main St",
	"7|S": "34 St-Hudson Yards",
	"A|N": "Inwood-207 St",
	"A|S": "Far Rockaway-Mott Av",
	"C|N": "168 St",
	"C|S": "Euclid Av",
	"E|N": "Jamaica Center-Parsons/Archer",
	"E|S": "World Trade Center",
	"B|N": "Bedford Park Blvd",
	"B|S": "Brighton Beach",
	"D|N": "Norwood-205 St",
	"D|S": "Coney Island-Stillwell Av",
	"F|N": "Jamaica-179 St",
	"F|S": "Coney Island-Stillwell Av",
	"M|N": "Forest Hills-71 Av",
	"M|S": "Middle Village-Metropolitan Av",
	"G|N": "Court Sq",
	"G|S": "Church Av",
	"J|N": "Jamaica Center-Parsons/Archer",
	"J|S": "Broad St",
	"Z|N": "Jamaica Center-Parsons/Archer",
	"Z|S": "Broad St",
	"L|N": "8 Av",
	"L|S": "Canarsie-Rockaway Pkwy",
	"N|N": "Astoria-Ditmars Blvd",
	"N|S": "Coney Island-Stillwell Av",
	"Q|N": "96 St",
	"Q|S": "Coney Island-Stillwell Av",
	"R|N": "Forest Hills-71 Av",
	"R|S": "Bay Ridge-95 St",
	"W|N": "Astoria-Ditmars Blvd",
	"W|S": "Whitehall St",
	"S|N": "Grand Central-42 St",
	"S|S": "Times Sq-42 St",
	"SI|N": "St George",
	"SI|S": "Tottenville",
}

var lineColors = map[string]string{
	"1": "#EE352E", "2": "#EE352E", "3": "#EE352E",
	"4": "#00933C", "5": "#00933C", "6": "#00933C",
	"7": "#B933AD",
	"A": "#0039A6", "C": "#0039A6", "E": "#0039A6",
	"B": "#FF6319", "D": "#FF6319", "F": "#FF6319", "M": "#FF6319",
	"G": "#6CBE45",
	"J": "#996633", "Z": "#996633",
	"L": "#A7A9AC",
	"N": "#FCCC0A", "Q": "#FCCC0A", "R": "#FCCC0A", "W": "#FCCC0A",
	"S": "#808183",
	"SI": "#0039A6",
}

// DestinationFor returns the terminal for a line and direction, falling back
// to the raw line code when the pair is unknown.
func DestinationFor(line, direction string) string {
	if dest, ok := terminals[line+"|"+direction]; ok {
		return dest
	}
	return line
}

// ColorFor returns the branded line color, or a neutral grey for lines
// without one.
func ColorFor(line string) string {
	if c, ok := lineColors[line]; ok {
		return c
	}
	return defaultColor
}

// destinationsFor lists plausible destinations for generated arrivals on a
// line. Both terminals qualify; unknown lines get a generic placeholder.
func destinationsFor(line string) []string {
	var out []string
	for _, dir := range []string{"N", "S"} {
		if dest, ok := terminals[line+"|"+dir]; ok {
			out = append(out, dest)
		}
	}
	if len(out) == 0 {
		return []string{"Terminal"}
	}
	return out
}
