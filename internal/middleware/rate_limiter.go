package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// limitador conta requisições por IP em janelas deslizantes. Os dois
// limitadores do router (API geral e login) compartilham esta implementação,
// variando só o limite, a janela e a mensagem de recusa.
type limitador struct {
	nome     string
	limite   int
	janela   time.Duration
	mensagem string

	mu       sync.Mutex
	entradas map[string]*janela
}

type janela struct {
	contagem int
	fimEm    time.Time
}

func novoLimitador(nome string, limite int, dur time.Duration, mensagem string) *limitador {
	l := &limitador{
		nome:     nome,
		limite:   limite,
		janela:   dur,
		mensagem: mensagem,
		entradas: make(map[string]*janela),
	}
	registraPurga(l)
	return l
}

// permite conta a requisição e informa se ela ainda cabe na janela do IP.
func (l *limitador) permite(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entradas[ip]
	now := time.Now()
	if !ok || now.After(e.fimEm) {
		e = &janela{fimEm: now.Add(l.janela)}
		l.entradas[ip] = e
	}
	e.contagem++
	return e.contagem <= l.limite, e.fimEm
}

func (l *limitador) purga(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removidas := 0
	for ip, e := range l.entradas {
		if now.After(e.fimEm) {
			delete(l.entradas, ip)
			removidas++
		}
	}
	return removidas
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fimEm := l.permite(c.ClientIP())
		if !ok {
			c.Header("Retry-After", fimEm.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensagem))
			return
		}
		c.Next()
	}
}

// RateLimiter protege a API inteira contra clientes desgovernados.
// O limite por minuto vem de RATE_LIMIT_PER_MIN.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return novoLimitador("api", limit, window,
		"Muitas requisições. Tente novamente em instantes.").handler()
}

// LoginRateLimiter é mais apertado que o limite geral: força-bruta de senha
// bate aqui antes do bcrypt. Limite por minuto em LOGIN_RATE_LIMIT_PER_MIN.
func LoginRateLimiter(limit int) gin.HandlerFunc {
	return novoLimitador("login", limit, time.Minute,
		"Muitas tentativas de login. Tente em 1 minuto.").handler()
}

// ── Purga ─────────────────────────────────────────────────────────────────────
// IPs que nunca voltam não podem acumular para sempre; uma goroutine única
// varre todos os limitadores registrados.

const intervaloPurga = 5 * time.Minute

var (
	purgaMu     sync.Mutex
	limitadores []*limitador
	purgaLigada bool
)

func registraPurga(l *limitador) {
	purgaMu.Lock()
	defer purgaMu.Unlock()
	limitadores = append(limitadores, l)
	if !purgaLigada {
		purgaLigada = true
		go purgaPeriodica()
	}
}

func purgaPeriodica() {
	ticker := time.NewTicker(intervaloPurga)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purgaMu.Lock()
		ativos := make([]*limitador, len(limitadores))
		copy(ativos, limitadores)
		purgaMu.Unlock()

		for _, l := range ativos {
			if n := l.purga(now); n > 0 {
				log.Debug().Str("limitador", l.nome).Int("removidas", n).
					Msg("janelas expiradas de rate limit removidas")
			}
		}
	}
}
