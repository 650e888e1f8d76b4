package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
)

const testCookieName = "KBSESSION"

// fakeBackend 模拟后端 API：带会话 Cookie 的请求拿 JSON，
// 其余请求拿登录页 HTML（对齐表单登录的跳转行为）
type fakeBackend struct {
	server     *httptest.Server
	importHits atomic.Int64
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}

	records := []api.Record{
		{Category: "信贷与风险类", Department: "信贷管理部", BizName: "个人经营贷", Keywords: "贷款,经营"},
		{Category: "保障类", Department: "科技部", BizName: "门禁权限申请", Keywords: "门禁"},
	}

	mux := http.NewServeMux()
	authed := func(r *http.Request) bool {
		ck, err := r.Cookie(testCookieName)
		return err == nil && ck.Value == "good"
	}
	serveLoginHTML := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<!DOCTYPE html><html><body>login</body></html>")
	}

	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			serveLoginHTML(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.Identity{Username: "admin", Role: "ADMIN", Department: "科技部"})
	})
	mux.HandleFunc("/api/knowledge", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			serveLoginHTML(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		var hits []api.Record
		for _, rec := range records {
			if strings.Contains(rec.Keywords, q) {
				hits = append(hits, rec)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hits)
	})
	mux.HandleFunc("/api/knowledge/import", func(w http.ResponseWriter, r *http.Request) {
		b.importHits.Add(1)
		if !authed(r) {
			serveLoginHTML(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.ImportResult{Added: 2, Updated: 1})
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func newFrontdesk(t *testing.T, backend *fakeBackend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(api.New(backend.server.URL), backend.server.URL, testCookieName)
	h.Register(r)
	return r
}

func sessionCookie() *http.Cookie {
	return &http.Cookie{Name: testCookieName, Value: "good"}
}

func TestIndexAuthenticatedShowsRecent(t *testing.T) {
	r := newFrontdesk(t, newFakeBackend(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "显示最近 2 条记录。")
	require.Contains(t, body, "个人经营贷")
	require.Contains(t, body, "退出")
	require.Contains(t, body, `href="/admin"`)
	require.Contains(t, body, "下载导入模板")
}

func TestIndexUnauthenticatedShowsLoginLink(t *testing.T) {
	r := newFrontdesk(t, newFakeBackend(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `href="/login.html"`)
	require.NotContains(t, body, `href="/admin"`)
	require.NotContains(t, body, "下载导入模板")
	// 数据接口吐的是登录页 HTML，状态栏原样报未登录
	require.Contains(t, body, "not logged in (html)")
}

func TestIndexSearchHighlights(t *testing.T) {
	r := newFrontdesk(t, newFakeBackend(t))

	req := httptest.NewRequest(http.MethodGet, "/?q=%E8%B4%B7%E6%AC%BE", nil)
	req.AddCookie(sessionCookie())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	require.Contains(t, body, "找到 1 条匹配记录。")
	require.Contains(t, body, "<mark>贷款</mark>")
}

func TestImportWithoutFileSkipsBackend(t *testing.T) {
	backend := newFakeBackend(t)
	r := newFrontdesk(t, backend)

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(sessionCookie())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Contains(t, w.Body.String(), "请先选择要导入的 Excel 文件。")
	require.Zero(t, backend.importHits.Load())
}

func TestImportSuccessRefreshesTable(t *testing.T) {
	backend := newFakeBackend(t)
	r := newFrontdesk(t, backend)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "list.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("excel-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(sessionCookie())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	require.Contains(t, body, "✅ 导入完成：新增 2，更新 1。")
	require.Contains(t, body, "个人经营贷")
	require.Equal(t, int64(1), backend.importHits.Load())
}

func pipelineCtx(cookieValue string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		c.Request.AddCookie(&http.Cookie{Name: testCookieName, Value: cookieValue})
	}
	return c
}

func TestPipelineRegistrySessionKeyedAndBounded(t *testing.T) {
	h := NewHandler(api.New("http://example.invalid"), "http://example.invalid", testCookieName)
	client := h.client

	// 同会话复用同一条管线
	p1 := h.pipelineFor(pipelineCtx("tok"), client)
	p2 := h.pipelineFor(pipelineCtx("tok"), client)
	require.Same(t, p1, p2)

	// 无会话的请求共用匿名管线，不计入上限
	anon1 := h.pipelineFor(pipelineCtx(""), client)
	anon2 := h.pipelineFor(pipelineCtx(""), client)
	require.Same(t, anon1, anon2)

	// 乱造 Cookie 不能把表撑爆：超过上限按先进先出淘汰
	for i := 0; i < maxPipelines*2; i++ {
		h.pipelineFor(pipelineCtx(fmt.Sprintf("junk-%d", i)), client)
	}
	require.LessOrEqual(t, len(h.pipelines), maxPipelines+1) // +1 匿名管线
	require.LessOrEqual(t, len(h.order), maxPipelines)
}
