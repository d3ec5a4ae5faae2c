package values

import "fmt"

// Direction is a block face.
type Direction int

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

var directionNames = []string{"down", "up", "north", "south", "west", "east"}

func (d Direction) String() string {
	return enumName(directionNames, int(d))
}

// ParseDirection resolves a lowercase direction name.
func ParseDirection(s string) (Direction, error) {
	i, err := parseEnum("direction", directionNames, s)
	return Direction(i), err
}

// Pose is an entity's body pose.
type Pose int

const (
	PoseStanding Pose = iota
	PoseFallFlying
	PoseSleeping
	PoseSwimming
	PoseSpinAttack
	PoseCrouching
	PoseLongJumping
	PoseDying
	PoseCroaking
	PoseUsingTongue
	PoseSitting
	PoseRoaring
	PoseSniffing
	PoseEmerging
	PoseDigging
	PoseSliding
	PoseShooting
	PoseInhaling
)

var poseNames = []string{
	"standing", "fall_flying", "sleeping", "swimming", "spin_attack", "crouching",
	"long_jumping", "dying", "croaking", "using_tongue", "sitting", "roaring",
	"sniffing", "emerging", "digging", "sliding", "shooting", "inhaling",
}

func (p Pose) String() string {
	return enumName(poseNames, int(p))
}

// ParsePose resolves a lowercase pose name.
func ParsePose(s string) (Pose, error) {
	i, err := parseEnum("pose", poseNames, s)
	return Pose(i), err
}

// SnifferState is the sniffer's behaviour state.
type SnifferState int

const (
	SnifferIdling SnifferState = iota
	SnifferFeelingHappy
	SnifferScenting
	SnifferSniffing
	SnifferSearching
	SnifferDigging
	SnifferRising
)

var snifferStateNames = []string{
	"idling", "feeling_happy", "scenting", "sniffing", "searching", "digging", "rising",
}

func (s SnifferState) String() string {
	return enumName(snifferStateNames, int(s))
}

// ParseSnifferState resolves a lowercase sniffer state name.
func ParseSnifferState(s string) (SnifferState, error) {
	i, err := parseEnum("sniffer state", snifferStateNames, s)
	return SnifferState(i), err
}

// ArmadilloState is the armadillo's roll state.
type ArmadilloState int

const (
	ArmadilloIdle ArmadilloState = iota
	ArmadilloRolling
	ArmadilloScared
	ArmadilloUnrolling
)

var armadilloStateNames = []string{"idle", "rolling", "scared", "unrolling"}

func (s ArmadilloState) String() string {
	return enumName(armadilloStateNames, int(s))
}

// ParseArmadilloState resolves a lowercase armadillo state name.
func ParseArmadilloState(s string) (ArmadilloState, error) {
	i, err := parseEnum("armadillo state", armadilloStateNames, s)
	return ArmadilloState(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(what string, names []string, s string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
