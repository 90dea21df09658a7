// Package config는 환경 변수 기반 설정 오버레이를 제공하는 패키지입니다.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 인터페이스는 설정 값에 액세스하기 위한 메서드를 정의합니다.
type Config interface {
	IsSet(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
}

// viperConfig는 viper를 사용하여 Config 인터페이스를 구현합니다.
type viperConfig struct {
	v *viper.Viper
}

// IsSet은 키에 해당하는 환경 변수가 설정되어 있는지 반환합니다.
func (c *viperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// GetString은 문자열 설정 값을 반환합니다.
func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt는 정수 설정 값을 반환합니다. 변환할 수 없는 값은 0입니다.
func (c *viperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool은 불리언 설정 값을 반환합니다.
func (c *viperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration은 "1s", "500ms" 형식의 기간 값을 반환합니다.
func (c *viperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// NewEnv는 prefix가 붙은 환경 변수를 읽는 설정을 생성합니다.
// 키의 "."은 "_"로 바뀝니다 (예: PAYMENT_SIMULATION_TEST_MODE).
// aliases에는 키별로 접두사 없이 함께 인식할 환경 변수 이름을 지정합니다.
func NewEnv(prefix string, aliases map[string][]string) (Config, error) {
	v := viper.New()

	replacer := strings.NewReplacer(".", "_")
	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	for key, names := range aliases {
		// 명시적으로 바인딩하면 접두사가 자동으로 붙지 않으므로 기본 이름도 함께 등록
		envNames := append([]string{strings.ToUpper(prefix + "_" + replacer.Replace(key))}, names...)
		if err := v.BindEnv(append([]string{key}, envNames...)...); err != nil {
			return nil, fmt.Errorf("환경 변수 바인딩 실패 (%s): %w", key, err)
		}
	}

	return &viperConfig{v: v}, nil
}
