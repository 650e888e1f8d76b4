package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// Client 以浏览器的方式访问后端：带会话 Cookie、禁用缓存、只要 JSON。
// Cookie 按请求线程化传入（WithCookie），不存全局状态。
type Client struct {
	base   string
	http   *http.Client
	cookie string
	trace  string
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
	}
}

// WithCookie 返回一个携带指定 Cookie 头的浅拷贝，原样转发浏览器的会话
func (c *Client) WithCookie(cookie string) *Client {
	clone := *c
	clone.cookie = cookie
	return &clone
}

// WithTrace 把入站请求的 Trace ID 带到后端，两边日志能串起来
func (c *Client) WithTrace(traceID string) *Client {
	clone := *c
	clone.trace = traceID
	return &clone
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	if c.trace != "" {
		req.Header.Set("X-Trace-Id", c.trace)
	}
	return req, nil
}

// looksLikeHTML 登录跳转会把 login.html 伪装成 200 返回
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(string(body)), "<")
}

// ResolveIdentity 解析当前身份。三类情况都收敛成"未登录"而不是报错：
// 非 2xx、HTML 伪装的响应、网络/解析失败（最后一类单独标记，便于排查）。
func (c *Client) ResolveIdentity(ctx context.Context) IdentityResult {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return IdentityResult{State: StateTransportError, Detail: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).Debug("身份请求失败")
		return IdentityResult{State: StateTransportError, Detail: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return IdentityResult{State: StateTransportError, Detail: err}
	}

	// 401/403/500 都当成未登录
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return IdentityResult{State: StateUnauthenticated}
	}
	// 返回了 HTML（例如登录页）=> 未登录
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return IdentityResult{State: StateUnauthenticated}
	}

	var me Identity
	if err := json.Unmarshal(body, &me); err != nil {
		return IdentityResult{State: StateTransportError, Detail: err}
	}
	return IdentityResult{State: StateAuthenticated, Identity: &me}
}

// getJSON 数据接口的统一请求：与身份解析不同，这里的失败要原样报给状态栏
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return fmt.Errorf("not logged in (html)")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return fmt.Errorf("not logged in (html)")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// RecentRecords 最近 N 条（默认浏览视图）
func (c *Client) RecentRecords(ctx context.Context, limit int) ([]Record, error) {
	var recs []Record
	err := c.getJSON(ctx, fmt.Sprintf("/api/knowledge?limit=%d", limit), &recs)
	return recs, err
}

// SearchRecords 关键词检索，q 做 URL 编码
func (c *Client) SearchRecords(ctx context.Context, q string) ([]Record, error) {
	var recs []Record
	err := c.getJSON(ctx, "/api/search?q="+url.QueryEscape(q), &recs)
	return recs, err
}

// ImportWorkbook 以 multipart 提交选中的 Excel 文件
func (c *Client) ImportWorkbook(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/knowledge/import", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return nil, fmt.Errorf("not logged in (html)")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result ImportResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAccounts 管理页：全部账号
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.getJSON(ctx, "/api/admin/users", &accounts)
	return accounts, err
}

// BootstrapDeptAccounts 管理页：一键生成部门账号（幂等）
func (c *Client) BootstrapDeptAccounts(ctx context.Context) (*BootstrapResult, error) {
	var result BootstrapResult
	if err := c.postJSON(ctx, "/api/admin/bootstrap-dept-accounts", struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResetPassword 管理页：重置指定账号密码，返回服务端的提示语
func (c *Client) ResetPassword(ctx context.Context, username, newPassword string) (string, error) {
	var resp struct {
		Msg string `json:"msg"`
	}
	payload := map[string]string{"username": username, "newPassword": newPassword}
	if err := c.postJSON(ctx, "/api/admin/users/reset-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Msg, nil
}

// Login 代理表单登录，返回后端下发的 Set-Cookie（由前台层转给浏览器）
func (c *Client) Login(ctx context.Context, username, password string) ([]*http.Cookie, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp.Cookies(), nil
}

// Logout 代理退出，返回后端用于清 Cookie 的 Set-Cookie
func (c *Client) Logout(ctx context.Context) ([]*http.Cookie, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.Cookies(), nil
}
