package http

import "net/http"

// HandlerFunc はエラーを返す HTTP ハンドラの型です。返したエラーは JSON エンベロープで書き出されます。
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP はエラーハンドリングを行うHTTPハンドラのServeHTTP実装です。
func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		writeError(w, err)
	}
}
