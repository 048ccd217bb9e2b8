package model

// HTTPFields is the ordered list of output columns for HTTP records.
// The order is fixed: CSV headers, JSON key order, and database columns
// all follow it.
var HTTPFields = []string{
	"uid", "src_ip", "src_port", "dst_ip", "dst_port",
	"method", "host", "uri", "user_agent", "status_code", "ja4h",
}

// TLSFields is the ordered list of output columns for TLS records.
var TLSFields = []string{
	"uid", "src_ip", "src_port", "dst_ip", "dst_port",
	"version", "cipher", "server_name", "ja4", "ja4s",
}

// TCPFields is the ordered list of output columns for TCP records.
var TCPFields = []string{
	"uid", "src_ip", "src_port", "dst_ip", "dst_port", "ja4t", "ja4ts",
}

// X509Fields is the flattened column list for X.509 records, used by the
// database sink. The JSON artifact keeps the nested shape instead.
var X509Fields = []string{
	"uid", "fuid", "orig_h", "resp_h",
	"ja4x", "version", "serial", "subject", "issuer",
	"not_before", "not_after", "key_type", "signature_algorithm",
}

// HTTPRecord is one http.log transaction carrying a JA4H fingerprint.
// All values stay as text, including ports and status codes, exactly as
// they appear in the source log.
type HTTPRecord struct {
	UID        string `json:"uid"`
	SrcIP      string `json:"src_ip"`
	SrcPort    string `json:"src_port"`
	DstIP      string `json:"dst_ip"`
	DstPort    string `json:"dst_port"`
	Method     string `json:"method"`
	Host       string `json:"host"`
	URI        string `json:"uri"`
	UserAgent  string `json:"user_agent"`
	StatusCode string `json:"status_code"`
	JA4H       string `json:"ja4h"`
}

// Row returns the record's values in HTTPFields order.
func (r *HTTPRecord) Row() []string {
	return []string{
		r.UID, r.SrcIP, r.SrcPort, r.DstIP, r.DstPort,
		r.Method, r.Host, r.URI, r.UserAgent, r.StatusCode, r.JA4H,
	}
}

// TLSRecord is one ssl.log handshake carrying a JA4 and/or JA4S fingerprint.
type TLSRecord struct {
	UID        string `json:"uid"`
	SrcIP      string `json:"src_ip"`
	SrcPort    string `json:"src_port"`
	DstIP      string `json:"dst_ip"`
	DstPort    string `json:"dst_port"`
	Version    string `json:"version"`
	Cipher     string `json:"cipher"`
	ServerName string `json:"server_name"`
	JA4        string `json:"ja4"`
	JA4S       string `json:"ja4s"`
}

// Row returns the record's values in TLSFields order.
func (r *TLSRecord) Row() []string {
	return []string{
		r.UID, r.SrcIP, r.SrcPort, r.DstIP, r.DstPort,
		r.Version, r.Cipher, r.ServerName, r.JA4, r.JA4S,
	}
}

// TCPRecord is one conn.log entry carrying a JA4T and/or JA4TS fingerprint.
type TCPRecord struct {
	UID     string `json:"uid"`
	SrcIP   string `json:"src_ip"`
	SrcPort string `json:"src_port"`
	DstIP   string `json:"dst_ip"`
	DstPort string `json:"dst_port"`
	JA4T    string `json:"ja4t"`
	JA4TS   string `json:"ja4ts"`
}

// Row returns the record's values in TCPFields order.
func (r *TCPRecord) Row() []string {
	return []string{r.UID, r.SrcIP, r.SrcPort, r.DstIP, r.DstPort, r.JA4T, r.JA4TS}
}

// ConnID holds the host endpoints of the connection an X.509 certificate
// was observed on.
type ConnID struct {
	OrigH string `json:"orig_h"`
	RespH string `json:"resp_h"`
}

// Validity is the certificate validity window, passed through as text.
type Validity struct {
	NotBefore string `json:"not_before"`
	NotAfter  string `json:"not_after"`
}

// CertInfo groups the certificate attributes of an X.509 record, including
// its JA4X fingerprint.
type CertInfo struct {
	JA4X         string   `json:"ja4x"`
	Version      string   `json:"version"`
	Serial       string   `json:"serial"`
	Subject      string   `json:"subject"`
	Issuer       string   `json:"issuer"`
	Validity     Validity `json:"validity"`
	KeyType      string   `json:"key_type"`
	SignatureAlg string   `json:"signature_algorithm"`
}

// X509Record is one x509.log certificate entry. The JSON shape is nested;
// Row flattens it for tabular sinks.
type X509Record struct {
	UID      string   `json:"uid"`
	LogType  string   `json:"log_type"`
	FUID     string   `json:"fuid"`
	ID       ConnID   `json:"id"`
	CertInfo CertInfo `json:"cert_info"`
}

// Row returns the record's values flattened in X509Fields order.
// LogType is a constant tag and is not part of the row.
func (r *X509Record) Row() []string {
	return []string{
		r.UID, r.FUID, r.ID.OrigH, r.ID.RespH,
		r.CertInfo.JA4X, r.CertInfo.Version, r.CertInfo.Serial,
		r.CertInfo.Subject, r.CertInfo.Issuer,
		r.CertInfo.Validity.NotBefore, r.CertInfo.Validity.NotAfter,
		r.CertInfo.KeyType, r.CertInfo.SignatureAlg,
	}
}
