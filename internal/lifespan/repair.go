package lifespan

// Default repair assumptions used when a caller does not supply its own.
const (
	DefaultRepairCycle        = 10
	DefaultExtensionPerRepair = 3
)

// RepairPlan describes a periodic major-repair schedule.
type RepairPlan struct {
	// Cycle is the number of years between major repairs. Zero or negative
	// means no scheduled repairs.
	Cycle int `json:"cycle" yaml:"cycle"`

	// ExtensionPerRepair is the life gained by each repair, in years.
	ExtensionPerRepair int `json:"extension_per_repair" yaml:"extension_per_repair"`
}

// DefaultRepairPlan returns a repair every ten years, each adding three years.
func DefaultRepairPlan() RepairPlan {
	return RepairPlan{Cycle: DefaultRepairCycle, ExtensionPerRepair: DefaultExtensionPerRepair}
}

// Repairs returns how many repairs fit into life.
func (p RepairPlan) Repairs(life int) int {
	if p.Cycle <= 0 {
		return 0
	}
	return life / p.Cycle
}

// ExtendedLife returns life plus the extension earned by every repair.
func (p RepairPlan) ExtendedLife(life int) int {
	return life + p.Repairs(life)*p.ExtensionPerRepair
}

// RemodelAfter returns the recommended number of years until a remodel:
// half the remaining life.
func RemodelAfter(finalLife int) int {
	return finalLife / 2
}

// Prediction is an estimate together with the repair-extended outlook.
type Prediction struct {
	Result `yaml:",inline"`

	Repair       RepairPlan `json:"repair" yaml:"repair"`
	Repairs      int        `json:"repairs" yaml:"repairs"`
	ExtendedLife int        `json:"extended_life" yaml:"extended_life"`
	RemodelAfter int        `json:"remodel_after" yaml:"remodel_after"`
}

// Predict estimates the building's life and projects it under plan.
func Predict(in Input, plan RepairPlan) Prediction {
	res := Estimate(in)
	return Prediction{
		Result:       res,
		Repair:       plan,
		Repairs:      plan.Repairs(res.FinalLife),
		ExtendedLife: plan.ExtendedLife(res.FinalLife),
		RemodelAfter: RemodelAfter(res.FinalLife),
	}
}
