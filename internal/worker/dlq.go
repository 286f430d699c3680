package worker

// dlq.go — fila morta de jobs (recibos e lembretes de fiado que esgotaram
// as tentativas). Uma lista Redis por fila de origem: dlq:{fila}.
// Inspeção manual via redis-cli LRANGE.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const PrefixoDLQ = "dlq:"

// EntradaDLQ embrulha o job que falhou com o contexto necessário para
// reprocessá-lo manualmente.
type EntradaDLQ struct {
	FilaOrigem string          `json:"fila_origem"`
	Tipo       string          `json:"tipo"`
	Payload    json.RawMessage `json:"payload"`
	Erro       string          `json:"erro"`
	FalhouEm   string          `json:"falhou_em"` // RFC 3339
	Tentativas int             `json:"tentativas"`
}

// EnviarParaDLQ move um job esgotado para a fila morta. Falha aqui só é
// logada: perder a entrada da DLQ é preferível a derrubar o worker.
func EnviarParaDLQ(ctx context.Context, rdb *redis.Client, fila, tipo string, payload json.RawMessage, motivo string, tentativas int) {
	entrada := EntradaDLQ{
		FilaOrigem: fila,
		Tipo:       tipo,
		Payload:    payload,
		Erro:       motivo,
		FalhouEm:   time.Now().UTC().Format(time.RFC3339),
		Tentativas: tentativas,
	}

	data, err := json.Marshal(entrada)
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao serializar entrada")
		return
	}

	chave := PrefixoDLQ + fila
	if err := rdb.LPush(ctx, chave, data).Err(); err != nil {
		log.Error().Err(err).Str("chave", chave).Msg("dlq: falha ao enfileirar")
		return
	}

	log.Warn().
		Str("fila", fila).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("tentativas", tentativas).
		Msg("dlq: job movido para a fila morta")
}

// TamanhoDLQ informa quantos jobs aguardam inspeção em uma fila morta.
func TamanhoDLQ(ctx context.Context, rdb *redis.Client, fila string) (int64, error) {
	return rdb.LLen(ctx, PrefixoDLQ+fila).Result()
}
