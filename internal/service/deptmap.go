package service

// 部门清单与分类、引导账号用户名的固定映射。
// 调整部门时同步维护这两张表即可，顺序即展示顺序。

var Categories = []string{
	"综合管理类", "人事与监督类", "信贷与风险类", "财务与运营类", "业务与拓展类", "保障类",
}

type DeptEntry struct {
	Dept     string
	Category string
	// Bootstrap 用户名（好记的拼音缩写）
	Username string
}

var deptTable = []DeptEntry{
	// 1. 综合管理类
	{"综合部", "综合管理类", "zonghe"},
	{"党委办公室", "综合管理类", "dangwei"},
	{"监事会办公室", "综合管理类", "jianshi"},
	{"农金员办公室", "综合管理类", "nongjin"},

	// 2. 人事与监督类
	{"人力资源部", "人事与监督类", "renshi"},
	{"审计部", "人事与监督类", "shenji"},
	{"纪检监察部", "人事与监督类", "jijian"},

	// 3. 信贷与风险类
	{"信贷管理部", "信贷与风险类", "xindai"},
	{"风险管理部", "信贷与风险类", "fengxian"},
	{"贷款营销调查中心", "信贷与风险类", "diaochazhongxin"},
	{"贷后检查管理中心", "信贷与风险类", "daihou"},
	{"贷款审查审批中心", "信贷与风险类", "shenpi"},

	// 4. 财务与运营类
	{"财务会计部", "财务与运营类", "caiwu"},
	{"运营管理部", "财务与运营类", "yunying"},
	{"资产经营中心", "财务与运营类", "zichan"},

	// 5. 业务与拓展类
	{"业务发展部", "业务与拓展类", "yewufazhan"},
	{"金融市场部", "业务与拓展类", "jinrongshichang"},

	// 6. 保障类
	{"安全保卫部", "保障类", "baoan"},
	{"法律合规部", "保障类", "hegui"},
	{"科技部", "保障类", "keji"},
}

// CategoryOf 部门 -> 分类，未知部门返回 "未分类"
func CategoryOf(dept string) string {
	if dept == "" {
		return ""
	}
	for _, e := range deptTable {
		if e.Dept == dept {
			return e.Category
		}
	}
	return "未分类"
}

// DeptUsernames 部门 -> 引导账号用户名（保持清单顺序）
func DeptUsernames() []DeptEntry {
	return deptTable
}
