package mission

// Params configures one mission. The boundary clamps user input
// before it reaches the runner; the runner trusts what it gets.
type Params struct {
	RowTimeMS      int  `json:"row_time_ms"`
	NumRows        int  `json:"num_rows"`
	TurnPower      int  `json:"turn_power"`
	TurnRadiusCM   int  `json:"turn_radius_cm"`
	TurnTimeMS     int  `json:"turn_time_ms"`
	CaptureEachRow bool `json:"capture_each_row"`
}

// Operating ranges for operator-supplied parameters. Values outside
// are pulled to the nearest bound rather than rejected, so a sloppy
// request still produces a drivable mission.
const (
	minRowTimeMS  = 500
	maxRowTimeMS  = 20000
	minRows       = 1
	maxRows       = 50
	minTurnPower  = 10
	maxTurnPower  = 100
	minRadiusCM   = 10
	maxRadiusCM   = 200
	minTurnTimeMS = 500
	maxTurnTimeMS = 12000
)

// Clamp returns a copy with every field forced into its operating
// range.
func (p Params) Clamp() Params {
	p.RowTimeMS = clamp(p.RowTimeMS, minRowTimeMS, maxRowTimeMS)
	p.NumRows = clamp(p.NumRows, minRows, maxRows)
	p.TurnPower = clamp(p.TurnPower, minTurnPower, maxTurnPower)
	p.TurnRadiusCM = clamp(p.TurnRadiusCM, minRadiusCM, maxRadiusCM)
	p.TurnTimeMS = clamp(p.TurnTimeMS, minTurnTimeMS, maxTurnTimeMS)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
