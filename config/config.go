package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMb int    `default:"20" env:"APP_BODY_LIMIT_MB"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"interview-sim" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"resumes" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Auth struct {
		JWTSecret          string `default:"change-me" env:"JWT_SECRET"`
		SessionExpireInSec int    `default:"86400" env:"JWT_SESSION_EXPIRE_IN_SEC"`
	}
	AI struct {
		// yandexgpt | gemini | ollama, пусто - работа на моковых данных
		Provider   string `default:"" env:"AI_PROVIDER"`
		TimeoutSec int    `default:"15" env:"AI_TIMEOUT_SEC"`
		YandexGPT  struct {
			IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
			CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
		}
		Gemini struct {
			APIKey string `default:"" env:"GEMINI_API_KEY"`
			Model  string `default:"gemini-2.5-flash" env:"GEMINI_MODEL"`
		}
		Ollama struct {
			OllamaURL   string `default:"" env:"OLLAMA_URL"`
			OllamaModel string `default:"" env:"OLLAMA_MODEL"`
		}
	}
	Interview struct {
		QuestionDelayMs         int `default:"1000" env:"INTERVIEW_QUESTION_DELAY_MS"`
		AnswerDelayMs           int `default:"1000" env:"INTERVIEW_ANSWER_DELAY_MS"`
		FinishRedirectDelayMs   int `default:"3000" env:"INTERVIEW_FINISH_REDIRECT_DELAY_MS"`
		MinJobDescriptionLength int `default:"1" env:"INTERVIEW_MIN_JOB_DESCRIPTION_LENGTH"`
		SessionTTLHours         int `default:"24" env:"INTERVIEW_SESSION_TTL_HOURS"`
	}
	Extractor struct {
		UnidocLicenseKey string `default:"" env:"UNIDOC_LICENSE_KEY"`
	}
	Rabbit struct {
		URL   string `default:"" env:"RABBITMQ_URL"`
		Queue string `default:"interview_events" env:"RABBITMQ_QUEUE"`
	}
	Telegram struct {
		Token  string `default:"" env:"TELEGRAM_BOT_TOKEN"`
		ChatID int64  `default:"0" env:"TELEGRAM_CHAT_ID"`
	}
}

func configFiles() []string {
	files := []string{}
	if _, err := os.Stat("config.yml"); err == nil {
		files = append(files, "config.yml")
	}
	return files
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("ошибка чтения .env файла")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
