package mockdata

// Stock is a seed-table row
type Stock struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	Industry    string  `json:"industry"`
	Exchange    string  `json:"exchange"`
	Description string  `json:"description"`
	Founded     int     `json:"founded,omitempty"`
}

// seed prices are VND
var seed = []Stock{
	// Ngân hàng
	{"VCB", "Vietcombank", 85000, "Ngân hàng", "HOSE", "Ngân hàng TMCP Ngoại thương Việt Nam, một trong những ngân hàng lớn nhất Việt Nam", 1963},
	{"BID", "BIDV", 45000, "Ngân hàng", "HOSE", "Ngân hàng TMCP Đầu tư và Phát triển Việt Nam, tập trung vào lĩnh vực đầu tư và phát triển", 1957},
	{"CTG", "VietinBank", 30000, "Ngân hàng", "HOSE", "Ngân hàng TMCP Công Thương Việt Nam, một trong bốn ngân hàng thương mại quốc doanh lớn nhất", 1988},
	{"TCB", "Techcombank", 45000, "Ngân hàng", "HOSE", "Ngân hàng TMCP Kỹ Thương Việt Nam, ngân hàng tư nhân hàng đầu Việt Nam", 1993},
	{"MBB", "MB Bank", 25000, "Ngân hàng", "HOSE", "Ngân hàng TMCP Quân Đội, thành lập bởi Quân đội Nhân dân Việt Nam", 1994},
	{"VPB", "VPBank", 19600, "Ngân hàng", "HOSE", "Ngân hàng TMCP Việt Nam Thịnh Vượng", 1993},

	// Bất động sản
	{"VIC", "Vingroup", 60000, "Bất động sản", "HOSE", "Tập đoàn Vingroup, tập đoàn đa ngành lớn nhất Việt Nam với hoạt động chính trong lĩnh vực bất động sản", 1993},
	{"VHM", "Vinhomes", 38900, "Bất động sản", "HOSE", "Công ty Cổ phần Vinhomes, nhà phát triển bất động sản nhà ở thuộc Vingroup", 2008},
	{"VRE", "Vincom Retail", 23400, "Bất động sản", "HOSE", "Công ty Cổ phần Vincom Retail, nhà phát triển và vận hành trung tâm thương mại", 2012},
	{"NVL", "Novaland", 15000, "Bất động sản", "HOSE", "Tập đoàn Novaland, một trong những nhà phát triển bất động sản lớn nhất Việt Nam", 1992},
	{"PDR", "Phát Đạt", 18000, "Bất động sản", "HOSE", "Công ty Cổ phần Phát triển Bất động sản Phát Đạt, chuyên về phát triển bất động sản đô thị", 2004},
	{"NLG", "Nam Long Group", 25400, "Bất động sản", "HOSE", "Công ty Cổ phần Đầu tư Nam Long, nhà phát triển nhà ở vừa túi tiền", 1992},
	{"DXG", "Đất Xanh Group", 10900, "Bất động sản", "HOSE", "Công ty Cổ phần Tập đoàn Đất Xanh, môi giới và phát triển bất động sản", 2003},
	{"KDH", "Khang Điền House", 28500, "Bất động sản", "HOSE", "Công ty Cổ phần Đầu tư và Kinh doanh Nhà Khang Điền", 2001},

	// Chứng khoán
	{"SSI", "SSI Securities", 24300, "Chứng khoán", "HOSE", "Công ty Cổ phần Chứng khoán SSI, công ty chứng khoán lớn nhất Việt Nam", 1999},
	{"VND", "VNDirect Securities", 17200, "Chứng khoán", "HOSE", "Công ty Cổ phần Chứng khoán VNDirect", 2006},

	// Thực phẩm và đồ uống
	{"VNM", "Vinamilk", 80000, "Thực phẩm & Đồ uống", "HOSE", "Công ty Cổ phần Sữa Việt Nam, doanh nghiệp sản xuất sữa và các sản phẩm từ sữa hàng đầu Việt Nam", 1976},
	{"SAB", "Sabeco", 155000, "Đồ uống", "HOSE", "Tổng Công ty Cổ phần Bia - Rượu - Nước giải khát Sài Gòn, nhà sản xuất bia lớn nhất Việt Nam", 1977},
	{"MSN", "Masan Group", 92000, "Thực phẩm & Hàng tiêu dùng", "HOSE", "Tập đoàn Masan, tập đoàn tư nhân hàng đầu với các lĩnh vực thực phẩm, đồ uống và tài nguyên", 1996},

	// Sản xuất
	{"HPG", "Hòa Phát Group", 25000, "Thép & Kim loại", "HOSE", "Tập đoàn Hòa Phát, tập đoàn sản xuất thép và các sản phẩm thép lớn nhất Việt Nam", 1992},
	{"GEX", "GELEX Group", 24000, "Điện & Điện tử", "HOSE", "Tổng Công ty Cổ phần Thiết bị Điện Việt Nam, sản xuất thiết bị điện và đầu tư hạ tầng", 1990},
	{"REE", "REE Corporation", 43700, "Công nghiệp", "HOSE", "Công ty Cổ phần Cơ Điện Lạnh, cơ điện công trình và đầu tư hạ tầng điện nước", 1977},
	{"BMP", "Nhựa Bình Minh", 65800, "Vật liệu xây dựng", "HOSE", "Công ty Cổ phần Nhựa Bình Minh, sản xuất ống nhựa xây dựng", 1977},
	{"DCM", "Đạm Cà Mau", 19200, "Hóa chất", "HOSE", "Công ty Cổ phần Phân bón Dầu khí Cà Mau", 2011},

	// Dầu khí và năng lượng
	{"GAS", "PV Gas", 95000, "Năng lượng", "HOSE", "Tổng Công ty Khí Việt Nam, đơn vị kinh doanh khí đốt lớn nhất Việt Nam", 1990},
	{"POW", "PetroVietnam Power", 13000, "Năng lượng", "HOSE", "Tổng Công ty Điện lực Dầu khí Việt Nam, nhà sản xuất và cung cấp điện năng lớn thứ hai Việt Nam", 2007},
	{"PLX", "Petrolimex", 50000, "Năng lượng", "HOSE", "Tập đoàn Xăng dầu Việt Nam, doanh nghiệp kinh doanh xăng dầu lớn nhất Việt Nam", 1956},

	// Công nghệ
	{"FPT", "FPT Corporation", 90000, "Công nghệ thông tin", "HOSE", "Tập đoàn FPT, tập đoàn công nghệ lớn nhất Việt Nam chuyên về phần mềm, viễn thông và giáo dục", 1988},
	{"CMG", "CMC Group", 48000, "Công nghệ thông tin", "HOSE", "Công ty Cổ phần Tập đoàn Công nghệ CMC, cung cấp dịch vụ CNTT và viễn thông", 1993},
	{"VNG", "VNG Corporation", 120000, "Công nghệ thông tin", "UPCOM", "Công ty Cổ phần VNG, công ty công nghệ internet lớn nhất Việt Nam với các sản phẩm: Zalo, ZaloPay", 2004},

	// Bán lẻ
	{"MWG", "Mobile World", 45000, "Bán lẻ", "HOSE", "Công ty Cổ phần Đầu tư Thế Giới Di Động, chuỗi bán lẻ điện thoại, điện máy lớn nhất Việt Nam", 2004},
	{"PNJ", "Phú Nhuận Jewelry", 110000, "Bán lẻ", "HOSE", "Công ty Cổ phần Vàng bạc Đá quý Phú Nhuận, nhà sản xuất và bán lẻ trang sức lớn nhất Việt Nam", 1988},

	// Khác
	{"VJC", "Vietjet Air", 51700, "Hàng không", "HOSE", "Công ty Cổ phần Hàng không Vietjet, hãng hàng không giá rẻ lớn nhất Việt Nam", 2007},
	{"DHG", "Dược Hậu Giang", 85500, "Dược phẩm", "HOSE", "Công ty Cổ phần Dược Hậu Giang, doanh nghiệp dược phẩm hàng đầu Việt Nam", 1974},
	{"BMI", "Bảo Minh Insurance", 25300, "Bảo hiểm", "HOSE", "Tổng Công ty Cổ phần Bảo Minh, doanh nghiệp bảo hiểm phi nhân thọ", 1994},
}

// indexBases are approximate index levels used for synthetic index bars
var indexBases = map[string]float64{
	"VNINDEX":    1250,
	"VN30":       1320,
	"HNXINDEX":   235,
	"HNX30":      480,
	"UPCOMINDEX": 92,
}
