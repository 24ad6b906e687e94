package engine

// CountChargedObjects counts the objects currently holding a charge
func CountChargedObjects(state *SceneState) int {
	count := 0
	for _, obj := range state.Objects {
		if obj.Charged != nil && *obj.Charged {
			count++
		}
	}
	return count
}

// CountChargeableObjects counts the objects that can hold a charge at all
func CountChargeableObjects(state *SceneState) int {
	count := 0
	for _, obj := range state.Objects {
		if obj.Charged != nil {
			count++
		}
	}
	return count
}

// FindNearestChargeable returns the chargeable object closest to the arm,
// along with its distance
func FindNearestChargeable(state *SceneState) (ObjectState, float64, bool) {
	minDistance := -1.0
	var nearest ObjectState
	found := false

	for _, obj := range state.Objects {
		if obj.Charged == nil {
			continue
		}
		distance := state.ArmPosition.DistanceTo(obj.Position)
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			nearest = obj
			found = true
		}
	}

	return nearest, minDistance, found
}

// TotalChargeInPlay returns arm charges plus charged objects. The exchange
// protocol conserves this quantity: every absorb or charge outcome moves one
// unit between the arm and a target.
func TotalChargeInPlay(state *SceneState) int {
	return state.Charges + CountChargedObjects(state)
}
