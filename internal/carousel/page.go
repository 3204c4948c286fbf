package carousel

import "html/template"

var pageTemplate = template.Must(template.New("carousel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Wallpapers</title>
    <link rel="stylesheet" href="{{.Assets.SwiperStyle}}">
    <style nonce="{{.Nonce}}">
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #0f172a;
            color: #e2e8f0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
        }
        .swiper { width: 100%; height: 100vh; }
        .swiper-slide { position: relative; display: flex; align-items: center; justify-content: center; background: #000; }
        .wallpaper-media { width: 100%; height: 100%; object-fit: cover; }
        .caption { position: absolute; left: 1.5rem; bottom: 1.5rem; font-size: 1.125rem; font-weight: 600; text-shadow: 0 1px 4px rgba(0,0,0,0.6); }
        .controls { position: absolute; right: 1.5rem; bottom: 1.5rem; display: flex; gap: 0.5rem; }
        .controls button, .controls select {
            background: rgba(15,23,42,0.8);
            color: #e2e8f0;
            border: 1px solid #334155;
            border-radius: 6px;
            padding: 0.375rem 0.75rem;
            font-size: 0.875rem;
        }
        .notice { color: #94a3b8; font-size: 1rem; }
        .message { display: flex; align-items: center; justify-content: center; min-height: 100vh; font-size: 1.125rem; }
        .message.error { color: #f87171; }
    </style>
</head>
<body>
{{if .Error}}
    <div class="message error" role="alert">Error: {{.Error}}</div>
{{else if .Empty}}
    <div class="message">No wallpapers available at the moment.</div>
{{else}}
    <div class="swiper">
        <div class="swiper-wrapper">
        {{range .Slides}}
            <div class="swiper-slide" data-id="{{.Item.ID}}" data-path="{{.Path}}">
            {{if .IsImage}}
                <img class="wallpaper-media wallpaper-image" data-src="{{.DisplayURL}}" alt="{{.Item.DisplayName}}">
            {{else if .Unsupported}}
                <p class="notice">Playback not supported</p>
            {{else}}
                <video class="wallpaper-media wallpaper-video" data-src="{{.DisplayURL}}" muted autoplay loop playsinline></video>
                <div class="controls">
                    <button type="button" class="toggle">Play</button>
                    {{if .Segmented}}
                    <select class="quality" aria-label="Quality">
                        {{range .QualityLevels}}<option value="{{.ID}}">{{.Label}}</option>{{end}}
                    </select>
                    {{end}}
                </div>
            {{end}}
                <div class="caption">{{.Item.DisplayName}}</div>
            </div>
        {{end}}
        </div>
        <div class="swiper-button-prev"></div>
        <div class="swiper-button-next"></div>
    </div>
    <script src="{{.Assets.SwiperScript}}"></script>
    <script src="{{.Assets.HLSScript}}"></script>
    <script nonce="{{.Nonce}}">
    (function() {
        var players = new Map();
        var live = 0;

        function release(video) {
            var entry = players.get(video);
            if (!entry) return;
            if (entry.hls) entry.hls.destroy();
            entry.listeners.forEach(function(l) { video.removeEventListener(l[0], l[1]); });
            players.delete(video);
            live--;
        }

        function track(video, hls) {
            release(video);
            var entry = { hls: hls, listeners: [], selected: -1 };
            players.set(video, entry);
            live++;
            return entry;
        }

        function listen(entry, video, type, fn) {
            video.addEventListener(type, fn);
            entry.listeners.push([type, fn]);
        }

        function tryPlay(video) {
            var p = video.play();
            if (p && p.catch) p.catch(function() {});
        }

        function showUnsupported(video) {
            var slide = video.closest('.swiper-slide');
            var controls = slide.querySelector('.controls');
            if (controls) controls.remove();
            var notice = document.createElement('p');
            notice.className = 'notice';
            notice.textContent = 'Playback not supported';
            video.replaceWith(notice);
        }

        function bindToggle(slide, video, entry) {
            var toggle = slide.querySelector('.toggle');
            if (!toggle) return;
            listen(entry, video, 'play', function() { toggle.textContent = 'Pause'; });
            listen(entry, video, 'pause', function() { toggle.textContent = 'Play'; });
            toggle.onclick = function() {
                if (video.paused) tryPlay(video); else video.pause();
            };
        }

        function levelLabel(level) {
            if (level.height) return level.height + 'p';
            if (level.bitrate) return Math.round(level.bitrate / 1000) + ' kbps';
            return 'Unknown';
        }

        function rebuildQuality(select, levels) {
            select.textContent = '';
            var auto = document.createElement('option');
            auto.value = 'auto';
            auto.textContent = 'Auto';
            select.appendChild(auto);
            levels.forEach(function(level, i) {
                var opt = document.createElement('option');
                opt.value = String(i);
                opt.textContent = levelLabel(level);
                select.appendChild(opt);
            });
            select.value = 'auto';
        }

        function attachDirect(slide, video, src) {
            var entry = track(video, null);
            bindToggle(slide, video, entry);
            video.src = src;
            tryPlay(video);
        }

        function attachNative(slide, video, src) {
            if (!video.canPlayType('application/vnd.apple.mpegurl')) {
                release(video);
                showUnsupported(video);
                return;
            }
            var quality = slide.querySelector('.quality');
            if (quality) quality.remove();
            attachDirect(slide, video, src);
        }

        function attachAdaptive(slide, video, src) {
            if (!(window.Hls && Hls.isSupported())) {
                attachNative(slide, video, src);
                return;
            }
            var hls = new Hls();
            var entry = track(video, hls);
            bindToggle(slide, video, entry);
            var select = slide.querySelector('.quality');
            hls.on(Hls.Events.MANIFEST_PARSED, function(_, data) {
                if (select) rebuildQuality(select, data.levels || []);
                entry.selected = -1;
                tryPlay(video);
            });
            if (select) {
                select.onchange = function() {
                    var next = select.value === 'auto' ? -1 : parseInt(select.value, 10);
                    if (next === entry.selected) return;
                    entry.selected = next;
                    hls.currentLevel = next;
                };
            }
            hls.loadSource(src);
            hls.attachMedia(video);
        }

        function withTimestamp(src) {
            return src + (src.indexOf('?') >= 0 ? '&' : '?') + 't=' + Date.now();
        }

        new Swiper('.swiper', {
            loop: true,
            slidesPerView: 1,
            spaceBetween: 0,
            autoplay: { delay: 3500, disableOnInteraction: false, pauseOnMouseEnter: true },
            navigation: { nextEl: '.swiper-button-next', prevEl: '.swiper-button-prev' }
        });

        document.querySelectorAll('.wallpaper-video').forEach(function(video) {
            var slide = video.closest('.swiper-slide');
            var src = video.getAttribute('data-src');
            switch (slide.getAttribute('data-path')) {
            case 'adaptive': attachAdaptive(slide, video, src); break;
            case 'native': attachNative(slide, video, src); break;
            default: attachDirect(slide, video, src);
            }
        });

        var observer = null;
        if ('IntersectionObserver' in window) {
            observer = new IntersectionObserver(function(entries) {
                entries.forEach(function(e) {
                    if (e.isIntersecting) e.target.src = withTimestamp(e.target.getAttribute('data-src'));
                });
            }, { threshold: 0.5 });
        }
        document.querySelectorAll('.wallpaper-image').forEach(function(img) {
            if (observer) observer.observe(img);
            else img.src = img.getAttribute('data-src');
        });

        window.addEventListener('pagehide', function() {
            Array.from(players.keys()).forEach(release);
            if (observer) observer.disconnect();
        });
    })();
    </script>
{{end}}
</body>
</html>`))
