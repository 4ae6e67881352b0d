package catalog

// builtin is the curated symbol list shipped with the service, used when
// a vendor's listing capability is unavailable or too slow.
// ⭐ SSOT: the default industry buckets are defined only here
var builtin = File{
	Industries: []Industry{
		{
			Key:   "banking",
			Label: "Ngân hàng",
			Symbols: []Entry{
				{"VCB", "Vietcombank", "HOSE"},
				{"BID", "BIDV", "HOSE"},
				{"CTG", "VietinBank", "HOSE"},
				{"TCB", "Techcombank", "HOSE"},
				{"MBB", "MB Bank", "HOSE"},
				{"VPB", "VPBank", "HOSE"},
				{"ACB", "ACB", "HOSE"},
				{"HDB", "HDBank", "HOSE"},
				{"STB", "Sacombank", "HOSE"},
				{"TPB", "TPBank", "HOSE"},
				{"VIB", "VIB", "HOSE"},
				{"SHB", "SHB", "HOSE"},
			},
		},
		{
			Key:   "real_estate",
			Label: "Bất động sản",
			Symbols: []Entry{
				{"VIC", "Vingroup", "HOSE"},
				{"VHM", "Vinhomes", "HOSE"},
				{"VRE", "Vincom Retail", "HOSE"},
				{"NVL", "Novaland", "HOSE"},
				{"PDR", "Phát Đạt", "HOSE"},
				{"KDH", "Khang Điền House", "HOSE"},
				{"NLG", "Nam Long Group", "HOSE"},
				{"DXG", "Đất Xanh Group", "HOSE"},
				{"DIG", "DIC Corp", "HOSE"},
				{"KBC", "Kinh Bắc City", "HOSE"},
			},
		},
		{
			Key:   "securities",
			Label: "Chứng khoán",
			Symbols: []Entry{
				{"SSI", "SSI Securities", "HOSE"},
				{"VND", "VNDirect Securities", "HOSE"},
				{"HCM", "HSC Securities", "HOSE"},
				{"VCI", "Vietcap Securities", "HOSE"},
				{"SHS", "Saigon-Hanoi Securities", "HNX"},
				{"MBS", "MB Securities", "HNX"},
			},
		},
		{
			Key:   "steel_materials",
			Label: "Thép & Vật liệu",
			Symbols: []Entry{
				{"HPG", "Hòa Phát Group", "HOSE"},
				{"HSG", "Hoa Sen Group", "HOSE"},
				{"NKG", "Nam Kim Steel", "HOSE"},
				{"BMP", "Nhựa Bình Minh", "HOSE"},
				{"DCM", "Đạm Cà Mau", "HOSE"},
				{"DPM", "Đạm Phú Mỹ", "HOSE"},
			},
		},
		{
			Key:   "energy",
			Label: "Năng lượng & Dầu khí",
			Symbols: []Entry{
				{"GAS", "PV Gas", "HOSE"},
				{"PLX", "Petrolimex", "HOSE"},
				{"POW", "PetroVietnam Power", "HOSE"},
				{"PVD", "PV Drilling", "HOSE"},
				{"PVS", "PTSC", "HNX"},
				{"BSR", "Bình Sơn Refining", "UPCOM"},
			},
		},
		{
			Key:   "technology",
			Label: "Công nghệ thông tin",
			Symbols: []Entry{
				{"FPT", "FPT Corporation", "HOSE"},
				{"CMG", "CMC Group", "HOSE"},
				{"ELC", "Elcom", "HOSE"},
				{"VGI", "Viettel Global", "UPCOM"},
				{"VNG", "VNG Corporation", "UPCOM"},
			},
		},
		{
			Key:   "retail",
			Label: "Bán lẻ",
			Symbols: []Entry{
				{"MWG", "Mobile World", "HOSE"},
				{"PNJ", "Phú Nhuận Jewelry", "HOSE"},
				{"FRT", "FPT Retail", "HOSE"},
				{"DGW", "Digiworld", "HOSE"},
			},
		},
		{
			Key:   "food_beverage",
			Label: "Thực phẩm & Đồ uống",
			Symbols: []Entry{
				{"VNM", "Vinamilk", "HOSE"},
				{"SAB", "Sabeco", "HOSE"},
				{"MSN", "Masan Group", "HOSE"},
				{"KDC", "KIDO Group", "HOSE"},
				{"QNS", "Quảng Ngãi Sugar", "UPCOM"},
			},
		},
		{
			Key:   "pharma",
			Label: "Dược phẩm",
			Symbols: []Entry{
				{"DHG", "Dược Hậu Giang", "HOSE"},
				{"IMP", "Imexpharm", "HOSE"},
				{"DBD", "Bidiphar", "HOSE"},
				{"TRA", "Traphaco", "HOSE"},
			},
		},
		{
			Key:   "transport",
			Label: "Vận tải & Hàng không",
			Symbols: []Entry{
				{"VJC", "Vietjet Air", "HOSE"},
				{"HVN", "Vietnam Airlines", "HOSE"},
				{"GMD", "Gemadept", "HOSE"},
				{"ACV", "Airports Corporation of Vietnam", "UPCOM"},
			},
		},
		{
			Key:   "insurance",
			Label: "Bảo hiểm",
			Symbols: []Entry{
				{"BVH", "Bảo Việt Holdings", "HOSE"},
				{"BMI", "Bảo Minh Insurance", "HOSE"},
				{"MIG", "Military Insurance", "HOSE"},
				{"PVI", "PVI Holdings", "HNX"},
			},
		},
		{
			Key:   "utilities",
			Label: "Điện & Hạ tầng",
			Symbols: []Entry{
				{"REE", "REE Corporation", "HOSE"},
				{"GEX", "GELEX Group", "HOSE"},
				{"PC1", "PC1 Group", "HOSE"},
				{"NT2", "Nhơn Trạch 2 Power", "HOSE"},
			},
		},
	},
}
