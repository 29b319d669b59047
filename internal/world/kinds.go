package world

import "fmt"

// Player identifies a side. The zero value is the neutral owner.
type Player uint8

const (
	PlayerNone Player = iota
	PlayerRed
	PlayerBlue
)

// String returns the player's lowercase name.
func (p Player) String() string {
	switch p {
	case PlayerRed:
		return "red"
	case PlayerBlue:
		return "blue"
	default:
		return "neutral"
	}
}

// Valid reports whether p is a real side (not neutral).
func (p Player) Valid() bool {
	return p == PlayerRed || p == PlayerBlue
}

// ResourceType enumerates the ten economy resources.
// Declaration order is the order shortages are resolved in.
type ResourceType uint8

const (
	ResourceCrops ResourceType = iota
	ResourceWood
	ResourceWool
	ResourceHorses
	ResourceStone
	ResourceOre
	ResourceTools
	ResourceCloth
	ResourceWine
	ResourceGold

	NumResources = 10
)

var resourceNames = [NumResources]string{
	ResourceCrops:  "crops",
	ResourceWood:   "wood",
	ResourceWool:   "wool",
	ResourceHorses: "horses",
	ResourceStone:  "stone",
	ResourceOre:    "ore",
	ResourceTools:  "tools",
	ResourceCloth:  "cloth",
	ResourceWine:   "wine",
	ResourceGold:   "gold",
}

func (r ResourceType) String() string {
	if int(r) < NumResources {
		return resourceNames[r]
	}
	return fmt.Sprintf("resource(%d)", r)
}

// Resources returns all resources in processing order.
func Resources() []ResourceType {
	out := make([]ResourceType, NumResources)
	for i := range out {
		out[i] = ResourceType(i)
	}
	return out
}

// Amounts is a per-resource quantity vector.
type Amounts [NumResources]int

// IsZero reports whether every quantity is zero.
func (a Amounts) IsZero() bool {
	return a == Amounts{}
}

// TileKind is a terrain/development kind on the upgrade lattice.
type TileKind uint8

const (
	TileForest TileKind = iota
	TilePasture
	TileFarm
	TileHomestead
	TileVillage
	TileTown
	TileCity
	TileManor
	TileEstate
	TilePalace
	TileOutpost
	TileStronghold
	TileKeep

	NumTileKinds = 13
)

// TileSpec is the static description of a tile kind.
type TileSpec struct {
	Name      string
	Produces  ResourceType
	Producing bool
	Upkeep    Amounts
	Upgrades  []TileKind
	Closed    bool // closed terrain for every player
	Weight    int  // generation weight
	Trains    []UnitKind
}

var tileSpecs = [NumTileKinds]TileSpec{
	TileForest: {
		Name: "forest", Produces: ResourceWood, Producing: true,
		Upgrades: []TileKind{TilePasture}, Closed: true, Weight: 30,
	},
	TilePasture: {
		Name: "pasture", Produces: ResourceWool, Producing: true,
		Upgrades: []TileKind{TileFarm}, Weight: 26,
	},
	TileFarm: {
		Name: "farm", Produces: ResourceCrops, Producing: true,
		Upgrades: []TileKind{TileHomestead}, Weight: 24,
	},
	TileHomestead: {
		Name: "homestead", Produces: ResourceCrops, Producing: true,
		Upgrades: []TileKind{TileVillage, TileManor, TileOutpost}, Weight: 8,
		Trains:   []UnitKind{UnitPeasant, UnitWoodcutter, UnitShepherd, UnitMilitia},
	},
	TileVillage: {
		Name: "village", Produces: ResourceTools, Producing: true,
		Upkeep:   Amounts{ResourceWood: 1},
		Upgrades: []TileKind{TileTown}, Weight: 4,
		Trains:   []UnitKind{UnitPeasant, UnitMason, UnitConstable, UnitMilitia, UnitSlinger},
	},
	TileTown: {
		Name: "town", Produces: ResourceCloth, Producing: true,
		Upkeep:   Amounts{ResourceWood: 1, ResourceCrops: 1},
		Upgrades: []TileKind{TileCity}, Closed: true, Weight: 1,
		Trains:   []UnitKind{UnitMiner, UnitSurveyor, UnitSpearman, UnitSwordsman, UnitArcher},
	},
	TileCity: {
		Name: "city", Produces: ResourceGold, Producing: true,
		Upkeep: Amounts{ResourceWood: 1, ResourceCrops: 1, ResourceCloth: 1},
		Closed: true, Weight: 1,
		Trains: []UnitKind{UnitGuard, UnitPikeman, UnitCrossbowman, UnitLongbowman},
	},
	TileManor: {
		Name: "manor", Produces: ResourceHorses, Producing: true,
		Upkeep:   Amounts{ResourceCrops: 1},
		Upgrades: []TileKind{TileEstate}, Weight: 3,
		Trains:   []UnitKind{UnitScout, UnitHorseman},
	},
	TileEstate: {
		Name: "estate", Produces: ResourceWine, Producing: true,
		Upkeep:   Amounts{ResourceCrops: 1, ResourceHorses: 1},
		Upgrades: []TileKind{TilePalace}, Weight: 1,
		Trains:   []UnitKind{UnitLancer},
	},
	TilePalace: {
		Name: "palace", Produces: ResourceGold, Producing: true,
		Upkeep: Amounts{ResourceWine: 1, ResourceCloth: 1, ResourceStone: 1},
		Trains: []UnitKind{UnitKnight},
	},
	TileOutpost: {
		Name: "outpost", Produces: ResourceStone, Producing: true,
		Upkeep:   Amounts{ResourceCrops: 1},
		Upgrades: []TileKind{TileStronghold}, Closed: true, Weight: 2,
		Trains:   []UnitKind{UnitMilitia, UnitSpearman, UnitSlinger, UnitScout},
	},
	TileStronghold: {
		Name: "stronghold", Produces: ResourceOre, Producing: true,
		Upkeep:   Amounts{ResourceCrops: 1, ResourceWood: 1},
		Upgrades: []TileKind{TileKeep}, Closed: true,
		Trains:   []UnitKind{UnitPikeman, UnitArcher, UnitHorseman},
	},
	TileKeep: {
		Name: "keep", Produces: ResourceOre, Producing: true,
		Upkeep: Amounts{ResourceCrops: 1, ResourceStone: 1, ResourceTools: 1},
		Closed: true,
		Trains: []UnitKind{UnitGuard, UnitTrebuchet, UnitKnight, UnitLongbowman},
	},
}

// Spec returns the static description of k.
func (k TileKind) Spec() TileSpec {
	return tileSpecs[k]
}

// Valid reports whether k belongs to the lattice.
func (k TileKind) Valid() bool {
	return int(k) < NumTileKinds
}

func (k TileKind) String() string {
	if k.Valid() {
		return tileSpecs[k].Name
	}
	return fmt.Sprintf("tile(%d)", k)
}

// Upkeep returns the per-turn resource cost of owning a tile of this kind.
func (k TileKind) Upkeep() Amounts {
	return tileSpecs[k].Upkeep
}

// HasUpkeep reports whether the kind incurs any upkeep. Raw-resource and
// base development kinds do not.
func (k TileKind) HasUpkeep() bool {
	return !tileSpecs[k].Upkeep.IsZero()
}

// Production returns the resource the kind yields, if any.
func (k TileKind) Production() (ResourceType, bool) {
	s := tileSpecs[k]
	return s.Produces, s.Producing
}

// Closed reports whether the kind is closed terrain.
func (k TileKind) Closed() bool {
	return tileSpecs[k].Closed
}

// ManorTier reports whether the kind doubles adjacent production.
func (k TileKind) ManorTier() bool {
	return k == TileManor || k == TileEstate || k == TilePalace
}

// PalaceTier reports whether owning the kind doubles all production.
func (k TileKind) PalaceTier() bool {
	return k == TilePalace
}

// CanUpgradeTo reports whether to is a direct successor of k on the lattice.
func (k TileKind) CanUpgradeTo(to TileKind) bool {
	for _, next := range tileSpecs[k].Upgrades {
		if next == to {
			return true
		}
	}
	return false
}

// Upgrades returns the direct lattice successors of k.
func (k TileKind) Upgrades() []TileKind {
	return append([]TileKind(nil), tileSpecs[k].Upgrades...)
}

// Trains returns the unit kinds a tile of this kind can train.
func (k TileKind) Trains() []UnitKind {
	return append([]UnitKind(nil), tileSpecs[k].Trains...)
}

// CanTrain reports whether u is in k's training table.
func (k TileKind) CanTrain(u UnitKind) bool {
	for _, t := range tileSpecs[k].Trains {
		if t == u {
			return true
		}
	}
	return false
}

// TileKinds returns all kinds in lattice declaration order.
func TileKinds() []TileKind {
	out := make([]TileKind, NumTileKinds)
	for i := range out {
		out[i] = TileKind(i)
	}
	return out
}

// ParseTileKind resolves a tile kind name.
func ParseTileKind(s string) (TileKind, error) {
	for i, spec := range tileSpecs {
		if spec.Name == s {
			return TileKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile kind %q", s)
}
