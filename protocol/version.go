package protocol

// Version is a dense, ordered enum of every Minecraft Java-Edition release
// this proxy knows about, spanning 1.7.2 through 1.20.3 plus Unknown.
// Ordering matters: registry construction (registry.go) walks declared
// from-version steps in this order.
type Version uint8

const (
	Unknown Version = iota
	V1_7_2
	V1_7_6
	V1_8
	V1_9
	V1_9_1
	V1_9_2
	V1_9_4
	V1_10
	V1_11
	V1_11_1
	V1_12
	V1_12_1
	V1_12_2
	V1_13
	V1_13_1
	V1_13_2
	V1_14
	V1_14_1
	V1_14_2
	V1_14_3
	V1_14_4
	V1_15
	V1_15_1
	V1_15_2
	V1_16
	V1_16_1
	V1_16_2
	V1_16_3
	V1_16_4
	V1_17
	V1_17_1
	V1_18
	V1_18_2
	V1_19
	V1_19_2
	V1_19_3
	V1_19_4
	V1_20
	V1_20_2
	V1_20_3
)

// Num returns the upstream protocol number for v, or -1 for Unknown.
func (v Version) Num() int32 {
	switch v {
	case V1_20_3:
		return 765
	case V1_20_2:
		return 764
	case V1_20:
		return 763
	case V1_19_4:
		return 762
	case V1_19_3:
		return 761
	case V1_19_2:
		return 760
	case V1_19:
		return 759
	case V1_18_2:
		return 758
	case V1_18:
		return 757
	case V1_17_1:
		return 756
	case V1_17:
		return 755
	case V1_16_4:
		return 754
	case V1_16_3:
		return 753
	case V1_16_2:
		return 751
	case V1_16_1:
		return 736
	case V1_16:
		return 735
	case V1_15_2:
		return 578
	case V1_15_1:
		return 575
	case V1_15:
		return 573
	case V1_14_4:
		return 498
	case V1_14_3:
		return 490
	case V1_14_2:
		return 485
	case V1_14_1:
		return 480
	case V1_14:
		return 477
	case V1_13_2:
		return 404
	case V1_13_1:
		return 401
	case V1_13:
		return 393
	case V1_12_2:
		return 340
	case V1_12_1:
		return 338
	case V1_12:
		return 335
	case V1_11_1:
		return 316
	case V1_11:
		return 315
	case V1_10:
		return 210
	case V1_9_4:
		return 110
	case V1_9_2:
		return 109
	case V1_9_1:
		return 108
	case V1_9:
		return 107
	case V1_8:
		return 47
	case V1_7_6:
		return 5
	case V1_7_2:
		return 4
	default:
		return -1
	}
}

// FromNum maps an upstream protocol number to a Version, or Unknown if the
// number isn't recognized.
func FromNum(n int32) Version {
	for v := V1_7_2; v <= V1_20_3; v++ {
		if v.Num() == n {
			return v
		}
	}
	return Unknown
}

// SupportsClientFacing reports whether v is at or above the minimum
// client-facing version this proxy accepts (1.19.2, protocol 760). Older
// versions are only ever spoken on the backend-facing leg.
func (v Version) SupportsClientFacing() bool {
	return v >= V1_19_2
}
