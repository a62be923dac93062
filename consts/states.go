package consts

import (
	"fmt"
	"strings"
)

var USStateName map[string]string

func init() {
	USStateName = make(map[string]string)

	USStateName["AK"] = "Alaska"
	USStateName["AL"] = "Alabama"
	USStateName["AR"] = "Arkansas"
	USStateName["AS"] = "American Samoa"
	USStateName["AZ"] = "Arizona"
	USStateName["CA"] = "California"
	USStateName["CO"] = "Colorado"
	USStateName["CT"] = "Connecticut"
	USStateName["DC"] = "District of Columbia"
	USStateName["DE"] = "Delaware"
	USStateName["FL"] = "Florida"
	USStateName["GA"] = "Georgia"
	USStateName["GU"] = "Guam"
	USStateName["HI"] = "Hawaii"
	USStateName["IA"] = "Iowa"
	USStateName["ID"] = "Idaho"
	USStateName["IL"] = "Illinois"
	USStateName["IN"] = "Indiana"
	USStateName["KS"] = "Kansas"
	USStateName["KY"] = "Kentucky"
	USStateName["LA"] = "Louisiana"
	USStateName["MA"] = "Massachusetts"
	USStateName["MD"] = "Maryland"
	USStateName["ME"] = "Maine"
	USStateName["MI"] = "Michigan"
	USStateName["MN"] = "Minnesota"
	USStateName["MO"] = "Missouri"
	USStateName["MP"] = "Northern Mariana Islands"
	USStateName["MS"] = "Mississippi"
	USStateName["MT"] = "Montana"
	USStateName["NC"] = "North Carolina"
	USStateName["ND"] = "North Dakota"
	USStateName["NE"] = "Nebraska"
	USStateName["NH"] = "New Hampshire"
	USStateName["NJ"] = "New Jersey"
	USStateName["NM"] = "New Mexico"
	USStateName["NV"] = "Nevada"
	USStateName["NY"] = "New York"
	USStateName["OH"] = "Ohio"
	USStateName["OK"] = "Oklahoma"
	USStateName["OR"] = "Oregon"
	USStateName["PA"] = "Pennsylvania"
	USStateName["PR"] = "Puerto Rico"
	USStateName["RI"] = "Rhode Island"
	USStateName["SC"] = "South Carolina"
	USStateName["SD"] = "South Dakota"
	USStateName["TN"] = "Tennessee"
	USStateName["TX"] = "Texas"
	USStateName["UT"] = "Utah"
	USStateName["VA"] = "Virginia"
	USStateName["VI"] = "U.S. Virgin Islands"
	USStateName["VT"] = "Vermont"
	USStateName["WA"] = "Washington"
	USStateName["WI"] = "Wisconsin"
	USStateName["WV"] = "West Virginia"
	USStateName["WY"] = "Wyoming"
}

// StateName - full name of a state code, case-insensitive
func StateName(code string) (string, error) {
	if name, ok := USStateName[strings.ToUpper(strings.TrimSpace(code))]; !ok {
		return "", fmt.Errorf("%s not exist", code)
	} else {
		return name, nil
	}
}
