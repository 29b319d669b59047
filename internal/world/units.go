package world

import "fmt"

// UnitClass groups unit kinds by role.
type UnitClass uint8

const (
	ClassWorker UnitClass = iota
	ClassInfantry
	ClassArcher
	ClassCavalry
)

func (c UnitClass) String() string {
	switch c {
	case ClassWorker:
		return "worker"
	case ClassInfantry:
		return "infantry"
	case ClassArcher:
		return "archer"
	case ClassCavalry:
		return "cavalry"
	}
	return fmt.Sprintf("class(%d)", c)
}

// Mobility selects the movement rule a unit kind follows.
type Mobility uint8

const (
	MobilityStep   Mobility = iota // single adjacent step
	MobilityRide                   // multi-step, rides through allies
	MobilitySurvey                 // multi-step over empty open ground, claims the path
)

// UnitFlag is a bit set of special unit behaviours.
type UnitFlag uint8

const (
	FlagSpear UnitFlag = 1 << iota
	FlagPike
	FlagLance
	FlagLongWeapon   // may not attack into (melee) or shoot from (ranged) closed cells
	FlagAttackOnMove // archer that may also attack by moving
	FlagConstable
)

// UnitKind enumerates the trainable unit kinds.
type UnitKind uint8

const (
	UnitPeasant UnitKind = iota
	UnitWoodcutter
	UnitShepherd
	UnitMason
	UnitMiner
	UnitConstable
	UnitSurveyor
	UnitMilitia
	UnitSpearman
	UnitPikeman
	UnitSwordsman
	UnitGuard
	UnitSlinger
	UnitArcher
	UnitCrossbowman
	UnitLongbowman
	UnitTrebuchet
	UnitScout
	UnitHorseman
	UnitLancer
	UnitKnight

	NumUnitKinds = 21
)

// noTile marks a unit kind without a free-unit or boost terrain.
const noTile TileKind = 255

// UnitSpec is the static description of a unit kind.
type UnitSpec struct {
	Name      string
	Class     UnitClass
	Mobility  Mobility
	MaxMove   int
	MaxAction int
	Range     int
	Flags     UnitFlag
	Upkeep    Amounts
	FreeOn    TileKind // upkeep waived while standing on this kind
	BoostsOn  TileKind // +1 production on this kind while resident
	Upgrades  []UnitKind
}

var unitSpecs = [NumUnitKinds]UnitSpec{
	UnitPeasant: {
		Name: "peasant", Class: ClassWorker, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1}, FreeOn: TileFarm, BoostsOn: TileFarm,
		Upgrades: []UnitKind{UnitMason, UnitConstable},
	},
	UnitWoodcutter: {
		Name: "woodcutter", Class: ClassWorker, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1}, FreeOn: TileForest, BoostsOn: TileForest,
	},
	UnitShepherd: {
		Name: "shepherd", Class: ClassWorker, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1}, FreeOn: TilePasture, BoostsOn: TilePasture,
	},
	UnitMason: {
		Name: "mason", Class: ClassWorker, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceTools: 1}, FreeOn: TileOutpost, BoostsOn: TileOutpost,
		Upgrades: []UnitKind{UnitMiner, UnitSurveyor},
	},
	UnitMiner: {
		Name: "miner", Class: ClassWorker, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceTools: 1}, FreeOn: TileStronghold, BoostsOn: TileStronghold,
	},
	UnitConstable: {
		Name: "constable", Class: ClassWorker, MaxMove: 1, MaxAction: 1, Flags: FlagConstable,
		Upkeep: Amounts{ResourceCrops: 1, ResourceCloth: 1}, FreeOn: TileVillage, BoostsOn: noTile,
	},
	UnitSurveyor: {
		Name: "surveyor", Class: ClassWorker, Mobility: MobilitySurvey, MaxMove: 3, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceTools: 1}, FreeOn: noTile, BoostsOn: noTile,
	},
	UnitMilitia: {
		Name: "militia", Class: ClassInfantry, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1}, FreeOn: TileHomestead, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitSpearman, UnitSwordsman},
	},
	UnitSpearman: {
		Name: "spearman", Class: ClassInfantry, MaxMove: 1, MaxAction: 1, Flags: FlagSpear | FlagLongWeapon,
		Upkeep: Amounts{ResourceCrops: 1, ResourceWood: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitPikeman},
	},
	UnitPikeman: {
		Name: "pikeman", Class: ClassInfantry, MaxMove: 1, MaxAction: 1, Flags: FlagPike | FlagLongWeapon,
		Upkeep: Amounts{ResourceCrops: 1, ResourceWood: 1, ResourceOre: 1}, FreeOn: noTile, BoostsOn: noTile,
	},
	UnitSwordsman: {
		Name: "swordsman", Class: ClassInfantry, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceOre: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitGuard},
	},
	UnitGuard: {
		Name: "guard", Class: ClassInfantry, MaxMove: 1, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceOre: 1, ResourceGold: 1}, FreeOn: TileKeep, BoostsOn: noTile,
	},
	UnitSlinger: {
		Name: "slinger", Class: ClassArcher, MaxMove: 1, MaxAction: 1, Range: 1, Flags: FlagAttackOnMove,
		Upkeep: Amounts{ResourceCrops: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitArcher, UnitCrossbowman},
	},
	UnitArcher: {
		Name: "archer", Class: ClassArcher, MaxMove: 1, MaxAction: 1, Range: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceWood: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitLongbowman},
	},
	UnitCrossbowman: {
		Name: "crossbowman", Class: ClassArcher, MaxMove: 1, MaxAction: 1, Range: 1, Flags: FlagAttackOnMove,
		Upkeep: Amounts{ResourceCrops: 1, ResourceTools: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitTrebuchet},
	},
	UnitLongbowman: {
		Name: "longbowman", Class: ClassArcher, MaxMove: 1, MaxAction: 1, Range: 2, Flags: FlagLongWeapon,
		Upkeep: Amounts{ResourceCrops: 1, ResourceWood: 1}, FreeOn: noTile, BoostsOn: noTile,
	},
	UnitTrebuchet: {
		Name: "trebuchet", Class: ClassArcher, MaxMove: 1, MaxAction: 1, Range: 2, Flags: FlagLongWeapon,
		Upkeep: Amounts{ResourceWood: 1, ResourceTools: 1, ResourceStone: 1}, FreeOn: noTile, BoostsOn: noTile,
	},
	UnitScout: {
		Name: "scout", Class: ClassCavalry, Mobility: MobilityRide, MaxMove: 3, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceHorses: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitHorseman},
	},
	UnitHorseman: {
		Name: "horseman", Class: ClassCavalry, Mobility: MobilityRide, MaxMove: 2, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceHorses: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitLancer, UnitKnight},
	},
	UnitLancer: {
		Name: "lancer", Class: ClassCavalry, Mobility: MobilityRide, MaxMove: 2, MaxAction: 1,
		Flags:  FlagLance | FlagLongWeapon,
		Upkeep: Amounts{ResourceCrops: 1, ResourceHorses: 1, ResourceOre: 1}, FreeOn: noTile, BoostsOn: noTile,
		Upgrades: []UnitKind{UnitKnight},
	},
	UnitKnight: {
		Name: "knight", Class: ClassCavalry, Mobility: MobilityRide, MaxMove: 2, MaxAction: 1,
		Upkeep: Amounts{ResourceCrops: 1, ResourceHorses: 1, ResourceOre: 1, ResourceGold: 1}, FreeOn: noTile, BoostsOn: noTile,
	},
}

// Spec returns the static description of k.
func (k UnitKind) Spec() UnitSpec {
	return unitSpecs[k]
}

// Valid reports whether k is a registered kind.
func (k UnitKind) Valid() bool {
	return int(k) < NumUnitKinds
}

func (k UnitKind) String() string {
	if k.Valid() {
		return unitSpecs[k].Name
	}
	return fmt.Sprintf("unit(%d)", k)
}

func (k UnitKind) Class() UnitClass { return unitSpecs[k].Class }
func (k UnitKind) Mobility() Mobility { return unitSpecs[k].Mobility }
func (k UnitKind) MaxMove() int { return unitSpecs[k].MaxMove }
func (k UnitKind) MaxAction() int { return unitSpecs[k].MaxAction }
func (k UnitKind) Range() int { return unitSpecs[k].Range }
func (k UnitKind) Upkeep() Amounts { return unitSpecs[k].Upkeep }
func (k UnitKind) Has(f UnitFlag) bool { return unitSpecs[k].Flags&f != 0 }

// Melee reports whether the kind fights hand to hand (infantry and cavalry).
func (k UnitKind) Melee() bool {
	c := unitSpecs[k].Class
	return c == ClassInfantry || c == ClassCavalry
}

// CanAttackByMoving reports whether the kind may move onto an enemy-occupied cell.
func (k UnitKind) CanAttackByMoving() bool {
	return k.Melee() || (k.Class() == ClassArcher && k.Has(FlagAttackOnMove))
}

// FreeOn reports whether the kind's upkeep is waived on tile kind t.
func (k UnitKind) FreeOn(t TileKind) bool {
	return unitSpecs[k].FreeOn == t
}

// BoostsOn reports whether a resident unit of this kind adds production on t.
func (k UnitKind) BoostsOn(t TileKind) bool {
	return unitSpecs[k].BoostsOn == t
}

// InteractionRadius is how far a unit can move and then strike: max move plus
// attack range, at least 1.
func (k UnitKind) InteractionRadius() int {
	return max(1, k.MaxMove()+k.Range())
}

// CanUpgradeTo reports whether to is a direct upgrade of k.
func (k UnitKind) CanUpgradeTo(to UnitKind) bool {
	for _, next := range unitSpecs[k].Upgrades {
		if next == to {
			return true
		}
	}
	return false
}

// Upgrades returns the direct upgrades of k.
func (k UnitKind) Upgrades() []UnitKind {
	return append([]UnitKind(nil), unitSpecs[k].Upgrades...)
}

// UnitKinds returns all kinds in declaration order.
func UnitKinds() []UnitKind {
	out := make([]UnitKind, NumUnitKinds)
	for i := range out {
		out[i] = UnitKind(i)
	}
	return out
}

// ParseUnitKind resolves a unit kind name.
func ParseUnitKind(s string) (UnitKind, error) {
	for i, spec := range unitSpecs {
		if spec.Name == s {
			return UnitKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit kind %q", s)
}
