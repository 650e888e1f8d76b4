package web

import (
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/console"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/gate"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/importer"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/render"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/search"
	"github.com/cr4652060-hue/kb-system/internal/middleware"
)

// 会话管线表的容量上限，满了按先进先出淘汰
const maxPipelines = 512

// Handler 前台页面层：每个请求解析一次身份、过一次角色门禁，
// 再把各控制器的产出塞进页面组件。
type Handler struct {
	client     *api.Client
	apiBase    string
	cookieName string

	// 每个会话一条检索管线，围栏只在同一个视图内生效
	mu        sync.Mutex
	pipelines map[string]*search.Pipeline
	order     []string
}

func NewHandler(client *api.Client, apiBase, cookieName string) *Handler {
	return &Handler{
		client:     client,
		apiBase:    apiBase,
		cookieName: cookieName,
		pipelines:  map[string]*search.Pipeline{},
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Index)
	r.POST("/import", h.Import)
	r.GET("/admin", h.Admin)
	r.POST("/admin/bootstrap", h.AdminBootstrap)
	r.POST("/admin/reset-password", h.AdminResetPassword)
	r.GET("/login.html", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// sessionClient 带上浏览器原样的 Cookie 和本次请求的 Trace ID 访问后端
func (h *Handler) sessionClient(c *gin.Context) *api.Client {
	return h.client.
		WithCookie(c.GetHeader("Cookie")).
		WithTrace(c.GetString(middleware.TraceContextKey))
}

// pipelineFor 只认会话 Cookie 的值做键，未登录请求共用一条匿名管线；
// 带键的条目有容量上限，防止乱造 Cookie 把表撑爆
func (h *Handler) pipelineFor(c *gin.Context, client *api.Client) *search.Pipeline {
	key, _ := c.Cookie(h.cookieName)

	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pipelines[key]
	if !ok {
		p = search.NewPipeline(client)
		h.pipelines[key] = p
		if key != "" {
			if len(h.order) >= maxPipelines {
				oldest := h.order[0]
				h.order = h.order[1:]
				delete(h.pipelines, oldest)
			}
			h.order = append(h.order, key)
		}
	}
	return p
}

type indexPage struct {
	View        gate.ViewState
	Query       string
	Status      string
	Table       string
	TemplateURL string
}

// Index 检索页：?q= 为空时展示最近记录
func (h *Handler) Index(c *gin.Context) {
	client := h.sessionClient(c)
	view := gate.Decide(client.ResolveIdentity(c.Request.Context()))

	q := c.Query("q")
	page := indexPage{
		View:        view,
		Query:       q,
		TemplateURL: h.apiBase + "/api/template/download",
	}

	result, err := h.pipelineFor(c, client).Run(c.Request.Context(), q)
	switch {
	case err == search.ErrStale:
		// 已有更新的检索在路上，这次不动表格
		page.Status = "检索中…"
	case err != nil:
		page.Status = err.Error()
		page.Table = render.RecordTable(nil, q)
	default:
		page.Status = result.Status
		page.Table = render.RecordTable(result.Records, result.Query)
	}

	h.renderPage(c, indexComponent(page))
}

// Import 提交 Excel 导入，完成后用最近记录刷新表格
func (h *Handler) Import(c *gin.Context) {
	client := h.sessionClient(c)
	view := gate.Decide(client.ResolveIdentity(c.Request.Context()))

	page := indexPage{
		View:        view,
		TemplateURL: h.apiBase + "/api/template/download",
	}

	ctrl := importer.NewController(client, h.pipelineFor(c, client))

	fileHeader, err := c.FormFile("file")
	var out importer.Outcome
	if err != nil {
		// 没选文件：控制器就地拦截，不发请求
		out = ctrl.Submit(c.Request.Context(), "", nil)
	} else {
		src, openErr := fileHeader.Open()
		if openErr != nil {
			out = importer.Outcome{Status: "文件读取失败：" + openErr.Error()}
		} else {
			defer src.Close()
			out = ctrl.Submit(c.Request.Context(), fileHeader.Filename, src)
		}
	}

	page.Status = out.Status
	if out.Refreshed != nil {
		page.Table = render.RecordTable(out.Refreshed.Records, out.Refreshed.Query)
	} else {
		page.Table = render.RecordTable(nil, "")
	}

	h.renderPage(c, indexComponent(page))
}

type adminPage struct {
	Allowed  bool
	Username string
	RoleText string
	Status   string
	Table    string
}

func (h *Handler) adminConsole(c *gin.Context) (*console.Console, adminPage) {
	client := h.sessionClient(c)
	identity := client.ResolveIdentity(c.Request.Context())

	page := adminPage{Username: "-", RoleText: "-"}
	if identity.Authenticated() {
		page.Username = identity.Identity.Username
		page.RoleText = identity.Identity.Role
	}

	cons := console.New(client, identity)
	page.Allowed = cons.Allowed()
	return cons, page
}

// Admin 管理页：非 ADMIN 只显示警告，不再发任何管理请求
func (h *Handler) Admin(c *gin.Context) {
	cons, page := h.adminConsole(c)

	accounts, status, _ := cons.LoadAccounts(c.Request.Context())
	page.Status = status
	if cons.Allowed() {
		page.Table = render.AccountTable(accounts)
	}

	h.renderPage(c, adminComponent(page))
}

func (h *Handler) AdminBootstrap(c *gin.Context) {
	cons, page := h.adminConsole(c)

	page.Status = cons.Bootstrap(c.Request.Context())
	if cons.Allowed() {
		// 生成后刷新账号列表
		if accounts, _, err := cons.LoadAccounts(c.Request.Context()); err == nil {
			page.Table = render.AccountTable(accounts)
		}
	}

	h.renderPage(c, adminComponent(page))
}

func (h *Handler) AdminResetPassword(c *gin.Context) {
	cons, page := h.adminConsole(c)

	page.Status = cons.ResetPassword(c.Request.Context(),
		c.PostForm("username"), c.PostForm("newPassword"))
	if cons.Allowed() {
		if accounts, _, err := cons.LoadAccounts(c.Request.Context()); err == nil {
			page.Table = render.AccountTable(accounts)
		}
	}

	h.renderPage(c, adminComponent(page))
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.renderPage(c, loginComponent(c.Query("error")))
}

// Login 把表单转给后端，后端下发的会话 Cookie 原样转给浏览器
func (h *Handler) Login(c *gin.Context) {
	client := h.client.WithTrace(c.GetString(middleware.TraceContextKey))
	cookies, err := client.Login(c.Request.Context(),
		c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.renderPage(c, loginComponent(err.Error()))
		return
	}

	for _, ck := range cookies {
		http.SetCookie(c.Writer, ck)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	cookies, err := h.sessionClient(c).Logout(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Warn("退出请求失败")
	}
	for _, ck := range cookies {
		http.SetCookie(c.Writer, ck)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) renderPage(c *gin.Context, comp templ.Component) {
	templ.Handler(comp, templ.WithStreaming()).ServeHTTP(c.Writer, c.Request)
}
