package family

import "github.com/ironsheep/simaja-mcp/internal/simdata"

// SimFromParsed turns an OCR result into a Sim for houseID. Fields that were
// not recognised stay empty; the caller stores the Sim with AddSim.
func SimFromParsed(parsed *simdata.ParsedSimData, houseID string) Sim {
	sim := Sim{
		HouseID: houseID,
		Traits:  []string{},
		Skills:  map[string]int{},
	}
	if parsed == nil {
		return sim
	}

	sim.Name = parsed.Name.Value
	sim.Age = parsed.Age.Value
	sim.Traits = parsed.TraitValues()
	sim.Aspiration = parsed.Aspiration.Value
	sim.Career = parsed.Career.Value
	sim.Skills = parsed.SkillLevels()
	return sim
}
