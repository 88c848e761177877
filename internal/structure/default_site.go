package structure

// DefaultSite 용인 2,3단지 기본 배치
// 동별 층수/기준층 호수와 일조권 사선제한 등으로 인한 죽은 세대 구간
func DefaultSite() []BuildingConfig {
	return []BuildingConfig{
		{
			ID: "2001", Name: "2001동", Floors: 23, UnitsPerFloor: 4,
			Dead: []DeadRule{
				{MinFloor: 21, MaxFloor: 23, Units: []int{3, 4}},
				{MinFloor: 18, MaxFloor: 20, Units: []int{4}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{1, 2, 3}},
			},
		},
		{
			ID: "2002", Name: "2002동", Floors: 22, UnitsPerFloor: 4,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 3}},
			},
		},
		{
			ID: "2003", Name: "2003동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 24, MaxFloor: 28, Units: []int{5, 6}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 3, 5}},
			},
		},
		{
			ID: "2004", Name: "2004동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 18, MaxFloor: 28, Units: []int{1}},
				{MinFloor: 21, MaxFloor: 28, Units: []int{2}},
				{MinFloor: 1, MaxFloor: 2, Units: []int{1}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{4, 5}},
			},
		},
		{
			ID: "2005", Name: "2005동", Floors: 26, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 17, MaxFloor: 26, Units: []int{1}},
				{MinFloor: 20, MaxFloor: 26, Units: []int{2}},
				{MinFloor: 26, MaxFloor: 26, Units: []int{3, 4}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 4, 6}},
			},
		},
		{
			ID: "2006", Name: "2006동", Floors: 26, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 25, MaxFloor: 26, Units: []int{1, 3}},
				{MinFloor: 26, MaxFloor: 26, Units: []int{4}},
				{MinFloor: 21, MaxFloor: 26, Units: []int{5}},
				{MinFloor: 19, MaxFloor: 26, Units: []int{6}},
				{MinFloor: 1, MaxFloor: 2, Units: []int{1}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{3, 4, 5, 6}},
			},
		},
		{
			ID: "2007", Name: "2007동", Floors: 27, UnitsPerFloor: 4,
			Dead: []DeadRule{
				{MinFloor: 26, MaxFloor: 27, Units: []int{3}},
				{MinFloor: 23, MaxFloor: 27, Units: []int{4}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 3}},
			},
		},
		{
			ID: "2008", Name: "2008동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{4}},
			},
		},
		{
			ID: "2009", Name: "2009동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{1, 3, 5}},
			},
		},
		{
			ID: "2010", Name: "2010동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{1, 2, 5}},
			},
		},
		{
			ID: "2011", Name: "2011동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 3}},
				{MinFloor: 1, MaxFloor: 2, Units: []int{5, 6}},
			},
		},
		{
			ID: "2012", Name: "2012동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{3}},
				{MinFloor: 1, MaxFloor: 2, Units: []int{1, 2, 5}},
			},
		},
		{
			ID: "2013", Name: "2013동", Floors: 28, UnitsPerFloor: 6,
			Dead: []DeadRule{
				{MinFloor: 22, MaxFloor: 28, Units: []int{1, 6}},
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 4}},
				{MinFloor: 1, MaxFloor: 3, Units: []int{5}},
			},
		},
		{
			ID: "3001", Name: "3001동", Floors: 21, UnitsPerFloor: 4,
			Dead: []DeadRule{
				{MinFloor: 20, MaxFloor: 21, Units: []int{1, 2, 3}},
				{MinFloor: 17, MaxFloor: 21, Units: []int{4}},
			},
		},
		{
			ID: "3002", Name: "3002동", Floors: 26, UnitsPerFloor: 4,
			Dead: []DeadRule{
				{MinFloor: 1, MaxFloor: 1, Units: []int{2, 3}},
			},
		},
		{
			ID: "3003", Name: "3003동", Floors: 23, UnitsPerFloor: 3,
			Dead: []DeadRule{
				{MinFloor: 19, MaxFloor: 23, Units: []int{2}},
			},
		},
	}
}
